package models

import "time"

// OrderStatus is the overall lifecycle status of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusPacked    OrderStatus = "packed"
	StatusInTransit OrderStatus = "in_transit"
	StatusReceived  OrderStatus = "received"
	StatusCompleted OrderStatus = "completed"
	StatusFailed    OrderStatus = "failed"
	StatusCanceled  OrderStatus = "canceled"
	StatusExpired   OrderStatus = "expired"
	StatusDenied    OrderStatus = "denied"
)

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCanceled, StatusExpired, StatusDenied:
		return true
	}
	return false
}

// DeliveryStatus is the courier/pickup sub-state of an order.
type DeliveryStatus string

const (
	DeliveryWaiting   DeliveryStatus = "waiting"
	DeliveryPickedUp  DeliveryStatus = "picked_up"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDone      DeliveryStatus = "done"
)

// DeliveryOption selects between courier shipment and in-store pickup.
type DeliveryOption string

const (
	OptionDelivery DeliveryOption = "delivery"
	OptionPickup   DeliveryOption = "pickup"
)

// Event is a lifecycle event applied to an order by one of the three
// actors (payment gateway, staff/courier, customer) or the expiry sweep.
type Event string

const (
	EventPaymentSettled   Event = "payment_settled"
	EventPaymentDenied    Event = "payment_denied"
	EventPaymentCanceled  Event = "payment_canceled"
	EventPaymentExpired   Event = "payment_expired"
	EventPack             Event = "pack"
	EventCourierPickup    Event = "courier_pickup"
	EventCourierTransit   Event = "courier_transit"
	EventCourierDelivered Event = "courier_delivered"
	EventCustomerReceive  Event = "customer_receive"
	EventFinalize         Event = "finalize"
	EventExpireSweep      Event = "expire_sweep"
)

// OrderState couples order status and delivery status so that a
// transition is always validated (and committed) against both fields at
// once. Illegal combinations are unrepresentable in the table below.
type OrderState struct {
	Status   OrderStatus
	Delivery DeliveryStatus
}

type transitionKey struct {
	option DeliveryOption
	state  OrderState
	event  Event
}

// transitions is the single source of truth for legal lifecycle moves.
// Anything not listed here is rejected without a state change.
var transitions = map[transitionKey]OrderState{
	// Payment outcomes, legal from pending only. Identical for both
	// delivery options.
	{OptionDelivery, OrderState{StatusPending, DeliveryWaiting}, EventPaymentSettled}:  {StatusPaid, DeliveryWaiting},
	{OptionDelivery, OrderState{StatusPending, DeliveryWaiting}, EventPaymentDenied}:   {StatusDenied, DeliveryWaiting},
	{OptionDelivery, OrderState{StatusPending, DeliveryWaiting}, EventPaymentCanceled}: {StatusCanceled, DeliveryWaiting},
	{OptionDelivery, OrderState{StatusPending, DeliveryWaiting}, EventPaymentExpired}:  {StatusExpired, DeliveryWaiting},
	{OptionDelivery, OrderState{StatusPending, DeliveryWaiting}, EventExpireSweep}:     {StatusExpired, DeliveryWaiting},
	{OptionPickup, OrderState{StatusPending, DeliveryWaiting}, EventPaymentSettled}:    {StatusPaid, DeliveryWaiting},
	{OptionPickup, OrderState{StatusPending, DeliveryWaiting}, EventPaymentDenied}:     {StatusDenied, DeliveryWaiting},
	{OptionPickup, OrderState{StatusPending, DeliveryWaiting}, EventPaymentCanceled}:   {StatusCanceled, DeliveryWaiting},
	{OptionPickup, OrderState{StatusPending, DeliveryWaiting}, EventPaymentExpired}:    {StatusExpired, DeliveryWaiting},
	{OptionPickup, OrderState{StatusPending, DeliveryWaiting}, EventExpireSweep}:       {StatusExpired, DeliveryWaiting},

	// Packing by staff.
	{OptionDelivery, OrderState{StatusPaid, DeliveryWaiting}, EventPack}: {StatusPacked, DeliveryWaiting},
	{OptionPickup, OrderState{StatusPaid, DeliveryWaiting}, EventPack}:   {StatusPacked, DeliveryWaiting},

	// Courier leg, shipped orders only.
	{OptionDelivery, OrderState{StatusPacked, DeliveryWaiting}, EventCourierPickup}:         {StatusPacked, DeliveryPickedUp},
	{OptionDelivery, OrderState{StatusPacked, DeliveryWaiting}, EventCourierTransit}:        {StatusInTransit, DeliveryInTransit},
	{OptionDelivery, OrderState{StatusPacked, DeliveryPickedUp}, EventCourierTransit}:       {StatusInTransit, DeliveryInTransit},
	{OptionDelivery, OrderState{StatusInTransit, DeliveryInTransit}, EventCourierDelivered}: {StatusReceived, DeliveryDone},

	// Customer receipt confirmation collapses straight to completed, so
	// reviews unlock at the moment of confirmation. The courier closing a
	// shipment (selesai) leaves the order at received until staff finalize.
	{OptionDelivery, OrderState{StatusInTransit, DeliveryInTransit}, EventCustomerReceive}: {StatusCompleted, DeliveryDone},
	{OptionDelivery, OrderState{StatusReceived, DeliveryDone}, EventCustomerReceive}:       {StatusCompleted, DeliveryDone},
	{OptionPickup, OrderState{StatusPaid, DeliveryWaiting}, EventCustomerReceive}:          {StatusCompleted, DeliveryDone},
	{OptionPickup, OrderState{StatusPacked, DeliveryWaiting}, EventCustomerReceive}:        {StatusCompleted, DeliveryDone},

	// Staff finalize for orders the courier already closed.
	{OptionDelivery, OrderState{StatusReceived, DeliveryDone}, EventFinalize}: {StatusCompleted, DeliveryDone},
}

// NextState returns the state an order in state cur moves to when ev is
// applied, or ErrIllegalTransition when the move is not in the table.
func NextState(option DeliveryOption, cur OrderState, ev Event) (OrderState, error) {
	next, ok := transitions[transitionKey{option, cur, ev}]
	if !ok {
		return OrderState{}, ErrIllegalTransition
	}
	return next, nil
}

// Courier-facing delivery status vocabulary. The courier endpoint only
// accepts these values and derives the order-status side effect itself;
// it never accepts an order status directly.
const (
	CourierMenunggu      = "menunggu"
	CourierDiambil       = "diambil"
	CourierSedangDikirim = "sedang dikirim"
	CourierSelesai       = "selesai"
)

// CourierEvent normalizes the courier vocabulary to a lifecycle event.
// "menunggu" is the initial delivery state, not a transition, so it maps
// to no event (empty Event, nil error).
func CourierEvent(deliveryStatus string) (Event, error) {
	switch deliveryStatus {
	case CourierMenunggu:
		return "", nil
	case CourierDiambil:
		return EventCourierPickup, nil
	case CourierSedangDikirim:
		return EventCourierTransit, nil
	case CourierSelesai:
		return EventCourierDelivered, nil
	}
	return "", ErrInvalidDeliveryStatus
}

// OrderLine is one purchased product within an order. Unit price and
// discount percentage are copied from the catalog at checkout time and
// never updated afterwards, so historical totals cannot drift.
type OrderLine struct {
	ID              uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID         string `json:"-" gorm:"index;type:varchar(36)"`
	ProductID       string `json:"product_id" gorm:"type:varchar(36)"`
	ProductName     string `json:"product_name"`
	Quantity        int    `json:"quantity" validate:"required,gt=0"`
	UnitPrice       int64  `json:"unit_price"`       // minor units, snapshot
	DiscountPercent int    `json:"discount_percent"` // 0-100, snapshot
}

// Subtotal returns the line amount in minor units after the snapshotted
// item discount, floored.
func (l OrderLine) Subtotal() int64 {
	return l.UnitPrice * int64(100-l.DiscountPercent) * int64(l.Quantity) / 100
}

// Order is the purchase aggregate tracked from checkout to completion.
// All amounts are integer minor units (rupiah).
type Order struct {
	ID             string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ClientID       string         `json:"client_id" gorm:"index;type:varchar(36)"`
	Lines          []OrderLine    `json:"lines" gorm:"foreignKey:OrderID"`
	Total          int64          `json:"total"`
	Status         OrderStatus    `json:"status" gorm:"type:varchar(20);index"`
	DeliveryOption DeliveryOption `json:"delivery_option" gorm:"type:varchar(10)"`
	DeliveryStatus DeliveryStatus `json:"delivery_status" gorm:"type:varchar(20)"`
	ShippingCost   int64          `json:"shipping_cost"`

	// Address snapshot, copied at checkout for delivery orders.
	RecipientName  string `json:"recipient_name,omitempty"`
	RecipientPhone string `json:"recipient_phone,omitempty"`
	Street         string `json:"street,omitempty"`

	VoucherID       *string `json:"voucher_id,omitempty" gorm:"type:varchar(36)"`
	VoucherDiscount int64   `json:"voucher_discount"`

	PaymentMethod  string     `json:"payment_method"`
	PaymentToken   string     `json:"payment_token,omitempty"`
	ShippingNumber *string    `json:"shipping_number,omitempty"`
	PickupDeadline *time.Time `json:"pickup_deadline,omitempty"`
	ReceivedAt     *time.Time `json:"received_at,omitempty"`
	Note           string     `json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// State returns the coupled (status, delivery status) pair used by the
// transition table and the compare-and-swap repository update.
func (o *Order) State() OrderState {
	return OrderState{Status: o.Status, Delivery: o.DeliveryStatus}
}

// ComputeTotal derives the frozen total from the line snapshots. Called
// exactly once at checkout; the stored total is never recomputed from
// live catalog data afterwards.
func (o *Order) ComputeTotal() int64 {
	var sum int64
	for _, l := range o.Lines {
		sum += l.Subtotal()
	}
	return sum + o.ShippingCost - o.VoucherDiscount
}
