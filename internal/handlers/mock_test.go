package handlers_test

import (
	"context"
	"database/sql"
	"sync"

	"agrocore/models"
)

// MockStorage implements handlers.StorageInterface. Defaults return benign
// fixtures; per-test behavior is injected through the Func fields.
type MockStorage struct {
	user        *models.User
	opportunity *models.Opportunity
	proposal    *models.Proposal
	contract    *models.Contract
	post        *models.Post

	notifications []models.Notification
	buyerProfile  *models.BuyerProfile

	CreateUserFunc           func(ctx context.Context, u *models.User) error
	GetUserByEmailFunc       func(ctx context.Context, email string) (*models.User, error)
	GetUserFunc              func(ctx context.Context, id int) (*models.User, error)
	GetOpportunityFunc       func(ctx context.Context, id int) (*models.Opportunity, error)
	GetProposalFunc          func(ctx context.Context, id int) (*models.Proposal, error)
	AcceptProposalFunc       func(ctx context.Context, proposalID int) (*models.Contract, error)
	UpdateProposalStatusFunc func(ctx context.Context, id int, from, to models.ProposalStatus) error
	CounterProposalFunc      func(ctx context.Context, id int, price float64, quantity, message string) error
	FollowFunc               func(ctx context.Context, followerID, followingID int) (bool, error)
	ToggleLikeFunc           func(ctx context.Context, postID, userID int) (bool, error)
	CreateMessageFunc        func(ctx context.Context, m *models.Message) error
	GetConversationsFunc     func(ctx context.Context, userID int) ([]models.Conversation, error)
}

func (m *MockStorage) CreateUser(ctx context.Context, u *models.User) error {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, u)
	}
	u.ID = 90
	return nil
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(ctx, email)
	}
	return nil, sql.ErrNoRows
}

func (m *MockStorage) UpsertBuyerProfile(ctx context.Context, p *models.BuyerProfile) error {
	m.buyerProfile = p
	return nil
}

func (m *MockStorage) GetUser(ctx context.Context, id int) (*models.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	if m.user != nil {
		return m.user, nil
	}
	return &models.User{ID: id, Name: "Test User", ProfileType: models.ProfileBuyer}, nil
}

func (m *MockStorage) ListUsers(ctx context.Context, viewerID int) ([]models.UserDirectoryEntry, error) {
	return []models.UserDirectoryEntry{
		{ID: 2, Name: "Maria Santos", ProfileType: models.ProfileProducer, IsFollowing: true},
		{ID: 3, Name: "Jorge Lima", ProfileType: models.ProfileSupplier, IsFollowing: false},
	}, nil
}

func (m *MockStorage) ListBuyerProfiles(ctx context.Context) ([]models.BuyerProfile, error) {
	return []models.BuyerProfile{{UserID: 1, CompanyName: "AgroComercial Ltda"}}, nil
}

func (m *MockStorage) CreateOpportunity(ctx context.Context, o *models.Opportunity) error {
	o.ID = 10
	o.Status = models.OpportunityActive
	return nil
}

func (m *MockStorage) GetOpportunity(ctx context.Context, id int) (*models.Opportunity, error) {
	if m.GetOpportunityFunc != nil {
		return m.GetOpportunityFunc(ctx, id)
	}
	if m.opportunity != nil {
		return m.opportunity, nil
	}
	return &models.Opportunity{ID: id, UserID: 1, ProductName: "Soybeans", Status: models.OpportunityActive}, nil
}

func (m *MockStorage) UpdateOpportunityStatus(ctx context.Context, id int, status models.OpportunityStatus) error {
	return nil
}

func (m *MockStorage) GetOpportunities(ctx context.Context, ownerID int) ([]models.Opportunity, error) {
	return []models.Opportunity{{ID: 1, UserID: 1, ProductName: "Soybeans", Status: models.OpportunityActive}}, nil
}

func (m *MockStorage) CreateProposal(ctx context.Context, p *models.Proposal) error {
	p.ID = 20
	p.Status = models.ProposalPending
	return nil
}

func (m *MockStorage) GetProposal(ctx context.Context, id int) (*models.Proposal, error) {
	if m.GetProposalFunc != nil {
		return m.GetProposalFunc(ctx, id)
	}
	if m.proposal != nil {
		return m.proposal, nil
	}
	return &models.Proposal{ID: id, OpportunityID: 1, SellerID: 2, Price: 100, Status: models.ProposalPending}, nil
}

func (m *MockStorage) UpdateProposalStatus(ctx context.Context, id int, from, to models.ProposalStatus) error {
	if m.UpdateProposalStatusFunc != nil {
		return m.UpdateProposalStatusFunc(ctx, id, from, to)
	}
	if m.proposal != nil {
		m.proposal.Status = to
	}
	return nil
}

func (m *MockStorage) CounterProposal(ctx context.Context, id int, price float64, quantity, message string) error {
	if m.CounterProposalFunc != nil {
		return m.CounterProposalFunc(ctx, id, price, quantity, message)
	}
	if m.proposal != nil {
		m.proposal.Price = price
		m.proposal.QuantityOffered = quantity
		m.proposal.Message = message
		m.proposal.Status = models.ProposalCountered
	}
	return nil
}

func (m *MockStorage) AcceptProposal(ctx context.Context, proposalID int) (*models.Contract, error) {
	if m.AcceptProposalFunc != nil {
		return m.AcceptProposalFunc(ctx, proposalID)
	}
	p, _ := m.GetProposal(ctx, proposalID)
	opp, _ := m.GetOpportunity(ctx, p.OpportunityID)
	if m.proposal != nil {
		m.proposal.Status = models.ProposalAccepted
	}
	m.contract = &models.Contract{
		ID:         30,
		ProposalID: proposalID,
		BuyerID:    opp.UserID,
		SellerID:   p.SellerID,
		Price:      p.Price,
		Quantity:   p.QuantityOffered,
		Status:     models.ContractActive,
	}
	return m.contract, nil
}

func (m *MockStorage) GetUserProposals(ctx context.Context, userID int) ([]models.ProposalView, error) {
	return []models.ProposalView{}, nil
}

func (m *MockStorage) GetContract(ctx context.Context, id int) (*models.Contract, error) {
	if m.contract != nil {
		return m.contract, nil
	}
	return nil, sql.ErrNoRows
}

func (m *MockStorage) UpdateContractStatus(ctx context.Context, id int, status models.ContractStatus) error {
	if m.contract != nil {
		m.contract.Status = status
	}
	return nil
}

func (m *MockStorage) GetUserContracts(ctx context.Context, userID int) ([]models.ContractView, error) {
	return []models.ContractView{}, nil
}

func (m *MockStorage) GetMarketStats(ctx context.Context, userID int) (*models.MarketStats, error) {
	return &models.MarketStats{Buyers: 3, Opportunities: 5, Proposals: 2, Contracts: 1}, nil
}

func (m *MockStorage) CreateMessage(ctx context.Context, msg *models.Message) error {
	if m.CreateMessageFunc != nil {
		return m.CreateMessageFunc(ctx, msg)
	}
	msg.ID = 40
	return nil
}

func (m *MockStorage) GetConversationMessages(ctx context.Context, userID, contactID int) ([]models.Message, error) {
	return []models.Message{
		{ID: 1, SenderID: contactID, ReceiverID: userID, Content: "hello"},
		{ID: 2, SenderID: userID, ReceiverID: contactID, Content: "hi"},
	}, nil
}

func (m *MockStorage) GetConversations(ctx context.Context, userID int) ([]models.Conversation, error) {
	if m.GetConversationsFunc != nil {
		return m.GetConversationsFunc(ctx, userID)
	}
	return []models.Conversation{}, nil
}

// CreateNotification mirrors the store contract: self-notifications are
// suppressed and report created=false, and the actor's name is resolved on
// the created row.
func (m *MockStorage) CreateNotification(ctx context.Context, n *models.Notification) (bool, error) {
	if n.UserID == n.ActorID {
		return false, nil
	}
	n.ID = len(m.notifications) + 1
	actor, _ := m.GetUser(ctx, n.ActorID)
	n.ActorName = actor.Name
	m.notifications = append(m.notifications, *n)
	return true, nil
}

func (m *MockStorage) GetUserNotifications(ctx context.Context, userID int) ([]models.Notification, error) {
	return m.notifications, nil
}

func (m *MockStorage) MarkNotificationsRead(ctx context.Context, userID int) error { return nil }

func (m *MockStorage) DeleteUserNotifications(ctx context.Context, userID int) error {
	m.notifications = nil
	return nil
}

func (m *MockStorage) CreatePost(ctx context.Context, p *models.Post) error {
	p.ID = 50
	return nil
}

func (m *MockStorage) GetPost(ctx context.Context, id int) (*models.Post, error) {
	if m.post != nil {
		return m.post, nil
	}
	return &models.Post{ID: id, UserID: 3, Content: "harvest looking good"}, nil
}

func (m *MockStorage) GetFeed(ctx context.Context, viewerID, limit, offset int) ([]models.PostView, error) {
	return []models.PostView{}, nil
}

func (m *MockStorage) ToggleLike(ctx context.Context, postID, userID int) (bool, error) {
	if m.ToggleLikeFunc != nil {
		return m.ToggleLikeFunc(ctx, postID, userID)
	}
	return true, nil
}

func (m *MockStorage) CreateComment(ctx context.Context, c *models.Comment) error {
	c.ID = 60
	return nil
}

func (m *MockStorage) GetPostComments(ctx context.Context, postID int) ([]models.Comment, error) {
	return []models.Comment{}, nil
}

func (m *MockStorage) Follow(ctx context.Context, followerID, followingID int) (bool, error) {
	if m.FollowFunc != nil {
		return m.FollowFunc(ctx, followerID, followingID)
	}
	return true, nil
}

func (m *MockStorage) Unfollow(ctx context.Context, followerID, followingID int) error { return nil }

func (m *MockStorage) CreateProduct(ctx context.Context, p *models.Product) error {
	p.ID = 70
	return nil
}

func (m *MockStorage) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return &models.Product{ID: id, UserID: 4, Name: "Organic Corn", Price: 50}, nil
}

func (m *MockStorage) GetProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	return []models.Product{}, nil
}

func (m *MockStorage) CreateProductComment(ctx context.Context, c *models.ProductComment) error {
	c.ID = 80
	return nil
}

func (m *MockStorage) GetProductComment(ctx context.Context, id int) (*models.ProductComment, error) {
	return &models.ProductComment{ID: id, ProductID: 1, UserID: 5, Content: "is it certified?"}, nil
}

func (m *MockStorage) GetProductComments(ctx context.Context, productID int) ([]models.ProductComment, error) {
	return []models.ProductComment{}, nil
}

// mockPusher records pushes and simulates presence per user id.
type mockPusher struct {
	mu     sync.Mutex
	online map[int]bool
	pushed []pushedEvent
	data   []any
}

type pushedEvent struct {
	UserID int
	Event  string
}

func newMockPusher(online ...int) *mockPusher {
	p := &mockPusher{online: make(map[int]bool)}
	for _, id := range online {
		p.online[id] = true
	}
	return p
}

func (p *mockPusher) Push(userID int, event string, data any) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.online[userID] {
		return false
	}
	p.pushed = append(p.pushed, pushedEvent{UserID: userID, Event: event})
	p.data = append(p.data, data)
	return true
}

func (p *mockPusher) events() []pushedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]pushedEvent(nil), p.pushed...)
}

func (p *mockPusher) payloads() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]any(nil), p.data...)
}
