package directory

// Booking statuses as the directory reports them.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// NewBooking is the creation payload: one customer, one service, one date,
// one slot. Multi-slot bookings are submitted as one request per slot.
type NewBooking struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Service  string `json:"service"`
	Date     string `json:"date"`     // YYYY-MM-DD
	TimeSlot string `json:"timeSlot"` // HH:MM
	Status   string `json:"status"`
}

type Booking struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Service   string `json:"service"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type BookingPage struct {
	Bookings []Booking `json:"bookings"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}

type Review struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Approved  bool   `json:"approved"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type NewReview struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type Service struct {
	ID          string  `json:"_id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Duration    int     `json:"duration,omitempty"` // minutes
}
