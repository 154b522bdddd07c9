package domain

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleBoth   Role = "both"
)

// CanBuy reports whether the role permits placing orders.
func (r Role) CanBuy() bool { return r == RoleBuyer || r == RoleBoth }

// CanSell reports whether the role permits publishing products.
func (r Role) CanSell() bool { return r == RoleSeller || r == RoleBoth }

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleBoth:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusReceived  OrderStatus = "received"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// User is one registered identity. Reputation counters only ever grow
// (saturating at the uint32 ceiling) and a user is never deleted.
type User struct {
	Identity         string
	Role             Role
	BuyerReputation  uint32
	SellerReputation uint32
}

// Product is a catalog entry. IDs are sequential from 0 and never reused;
// only Quantity is mutated after publication.
type Product struct {
	ID          uint32
	Name        string
	Description string
	Price       uint64
	Quantity    uint32
	Category    string
	Seller      string
}

// Order tracks one purchase through the
// Pending -> Shipped -> Received / Pending -> Cancelled state machine.
type Order struct {
	ID                  uint32
	Buyer               string
	Seller              string
	ProductID           uint32
	Quantity            uint32
	Status              OrderStatus
	BuyerRated          bool
	SellerRated         bool
	BuyerRequestsCancel bool
	SellerAcceptsCancel bool
}

// NewOrder builds a Pending order with all flags cleared.
func NewOrder(id uint32, buyer, seller string, productID, quantity uint32) Order {
	return Order{
		ID:        id,
		Buyer:     buyer,
		Seller:    seller,
		ProductID: productID,
		Quantity:  quantity,
		Status:    OrderStatusPending,
	}
}
