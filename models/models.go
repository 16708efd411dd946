package models

import "time"

type (
	ProfileType       string // role of a registered user
	OpportunityStatus string
	ProposalStatus    string
	ContractStatus    string
	NotificationType  string
)

const (
	ProfileProducer ProfileType = "producer"
	ProfileSupplier ProfileType = "supplier"
	ProfileBuyer    ProfileType = "buyer"

	OpportunityActive OpportunityStatus = "active"
	OpportunityClosed OpportunityStatus = "closed"

	ProposalPending     ProposalStatus = "pending"
	ProposalNegotiating ProposalStatus = "negotiating"
	ProposalCountered   ProposalStatus = "countered"
	ProposalAccepted    ProposalStatus = "accepted"
	ProposalRejected    ProposalStatus = "rejected"

	ContractActive    ContractStatus = "active"
	ContractCompleted ContractStatus = "completed"
	ContractCancelled ContractStatus = "cancelled"

	NotifyLike           NotificationType = "like"
	NotifyComment        NotificationType = "comment"
	NotifyFollow         NotificationType = "follow"
	NotifyMessage        NotificationType = "message"
	NotifyProductComment NotificationType = "product_comment"
	NotifyProductReply   NotificationType = "product_reply"
)

// User entity
type User struct {
	ID           int         `db:"id" json:"id"`
	Name         string      `db:"name" json:"name" validate:"required,max=100"`
	Email        string      `db:"email" json:"email" validate:"required,email"`
	PasswordHash string      `db:"password_hash" json:"-"`
	ProfileType  ProfileType `db:"profile_type" json:"profileType" validate:"required,oneof=producer supplier buyer"`
	Company      string      `db:"company" json:"company"`
	Phone        string      `db:"phone" json:"phone"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
}

// Buyer profile entity (extends a buyer-role user)
type BuyerProfile struct {
	UserID      int    `db:"user_id" json:"userId"`
	CompanyName string `db:"company_name" json:"companyName"`
	Segment     string `db:"segment" json:"segment"`
	Region      string `db:"region" json:"region"`
}

// Opportunity entity: a buyer's open call for a product
type Opportunity struct {
	ID           int               `db:"id" json:"id"`
	UserID       int               `db:"user_id" json:"userId" validate:"required"`
	ProductName  string            `db:"product_name" json:"product" validate:"required,max=100"`
	Quantity     string            `db:"quantity" json:"quantity" validate:"required,max=100"`
	Quality      string            `db:"quality" json:"quality"`
	Price        float64           `db:"price" json:"price" validate:"required,gt=0"`
	Deadline     string            `db:"deadline" json:"deadline"`
	Requirements string            `db:"requirements" json:"requirements"`
	Status       OpportunityStatus `db:"status" json:"status"`
	CreatedAt    time.Time         `db:"created_at" json:"createdAt"`
}

// Proposal entity: a seller's quote against an opportunity
type Proposal struct {
	ID                int            `db:"id" json:"id"`
	OpportunityID     int            `db:"opportunity_id" json:"opportunityId" validate:"required"`
	SellerID          int            `db:"seller_id" json:"sellerId" validate:"required"`
	Price             float64        `db:"price" json:"price" validate:"required,gt=0"`
	QuantityOffered   string         `db:"quantity_offered" json:"quantityOffered" validate:"required,max=100"`
	Quality           string         `db:"quality" json:"quality"`
	DeliveryDate      string         `db:"delivery_date" json:"deliveryDate"`
	PaymentTerms      string         `db:"payment_terms" json:"paymentTerms"`
	TransportIncluded bool           `db:"transport_included" json:"transportIncluded"`
	Message           string         `db:"message" json:"message"`
	Status            ProposalStatus `db:"status" json:"status"`
	CreatedAt         time.Time      `db:"created_at" json:"createdAt"`
}

// ProposalView is a Proposal joined with the names the client renders.
type ProposalView struct {
	Proposal
	ProductName string `db:"product_name" json:"productName"`
	BuyerID     int    `db:"buyer_id" json:"buyerId"`
	BuyerName   string `db:"buyer_name" json:"buyerName"`
	SellerName  string `db:"seller_name" json:"sellerName"`
	Direction   string `db:"direction" json:"direction"` // "sent" or "received" relative to the queried user
}

// Contract entity: durable agreement created from an accepted proposal
type Contract struct {
	ID         int            `db:"id" json:"id"`
	ProposalID int            `db:"proposal_id" json:"proposalId"`
	BuyerID    int            `db:"buyer_id" json:"buyerId"`
	SellerID   int            `db:"seller_id" json:"sellerId"`
	Price      float64        `db:"price" json:"price"`
	Quantity   string         `db:"quantity" json:"quantity"`
	Status     ContractStatus `db:"status" json:"status"`
	StartDate  time.Time      `db:"start_date" json:"startDate"`
	EndDate    *time.Time     `db:"end_date" json:"endDate,omitempty"`
}

// ContractView is a Contract joined with product and party names.
type ContractView struct {
	Contract
	ProductName string `db:"product_name" json:"productName"`
	BuyerName   string `db:"buyer_name" json:"buyerName"`
	SellerName  string `db:"seller_name" json:"sellerName"`
}

// Message entity
type Message struct {
	ID         int       `db:"id" json:"id"`
	SenderID   int       `db:"sender_id" json:"senderId" validate:"required"`
	ReceiverID int       `db:"receiver_id" json:"receiverId" validate:"required"`
	Content    string    `db:"content" json:"content"`
	ImageURL   *string   `db:"image_url" json:"imageUrl,omitempty"`
	IsRead     bool      `db:"is_read" json:"isRead"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Conversation is the derived per-counterpart view of the message store.
type Conversation struct {
	ID          int       `db:"id" json:"id"` // counterpart user id
	Name        string    `db:"name" json:"name"`
	LastMessage string    `db:"last_message" json:"last_message"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UnreadCount int       `db:"unread_count" json:"unread_count"`
}

// Notification entity
type Notification struct {
	ID          int              `db:"id" json:"id"`
	UserID      int              `db:"user_id" json:"userId"`
	ActorID     int              `db:"actor_id" json:"actorId"`
	ActorName   string           `db:"actor_name" json:"actorName"`
	Type        NotificationType `db:"type" json:"type"`
	ReferenceID int              `db:"reference_id" json:"referenceId"`
	IsRead      bool             `db:"is_read" json:"isRead"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
}

// Connection entity (follow edge)
type Connection struct {
	FollowerID  int       `db:"follower_id" json:"followerId" validate:"required"`
	FollowingID int       `db:"following_id" json:"followingId" validate:"required"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Post entity
type Post struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"userId" validate:"required"`
	Content   string    `db:"content" json:"content" validate:"required,max=2000"`
	ImageURL  *string   `db:"image_url" json:"imageUrl,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// PostView is a Post joined with author name and engagement counts.
type PostView struct {
	Post
	AuthorName   string `db:"author_name" json:"authorName"`
	LikeCount    int    `db:"like_count" json:"likeCount"`
	CommentCount int    `db:"comment_count" json:"commentCount"`
	LikedByMe    bool   `db:"liked_by_me" json:"likedByMe"`
}

// Comment entity, threaded via ParentID
type Comment struct {
	ID         int       `db:"id" json:"id"`
	PostID     int       `db:"post_id" json:"postId"`
	UserID     int       `db:"user_id" json:"userId" validate:"required"`
	ParentID   *int      `db:"parent_id" json:"parentId,omitempty"`
	Content    string    `db:"content" json:"content" validate:"required,max=1000"`
	AuthorName string    `db:"author_name" json:"authorName"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Product entity
type Product struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"userId" validate:"required"`
	Name        string    `db:"name" json:"name" validate:"required,max=100"`
	Description string    `db:"description" json:"description" validate:"max=1000"`
	Price       float64   `db:"price" json:"price" validate:"required,gt=0"`
	Unit        string    `db:"unit" json:"unit"`
	ImageURL    *string   `db:"image_url" json:"imageUrl,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// ProductComment entity, threaded via ParentID
type ProductComment struct {
	ID         int       `db:"id" json:"id"`
	ProductID  int       `db:"product_id" json:"productId"`
	UserID     int       `db:"user_id" json:"userId" validate:"required"`
	ParentID   *int      `db:"parent_id" json:"parentId,omitempty"`
	Content    string    `db:"content" json:"content" validate:"required,max=1000"`
	AuthorName string    `db:"author_name" json:"authorName"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// MarketStats is the aggregate read-model behind /api/market/stats.
type MarketStats struct {
	Buyers        int `db:"buyers" json:"buyers"`
	Opportunities int `db:"opportunities" json:"opportunities"`
	Proposals     int `db:"proposals" json:"proposals"`
	Contracts     int `db:"contracts" json:"contracts"`
}

// UserDirectoryEntry is a directory row with the batched follow flag.
type UserDirectoryEntry struct {
	ID          int         `db:"id" json:"id"`
	Name        string      `db:"name" json:"name"`
	ProfileType ProfileType `db:"profile_type" json:"profileType"`
	Company     string      `db:"company" json:"company"`
	IsFollowing bool        `db:"is_following" json:"isFollowing"`
}
