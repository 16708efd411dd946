package handlers

import (
	"context"

	"agrocore/models"
)

type StorageInterface interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, viewerID int) ([]models.UserDirectoryEntry, error)
	UpsertBuyerProfile(ctx context.Context, p *models.BuyerProfile) error
	ListBuyerProfiles(ctx context.Context) ([]models.BuyerProfile, error)

	CreateOpportunity(ctx context.Context, o *models.Opportunity) error
	GetOpportunity(ctx context.Context, id int) (*models.Opportunity, error)
	UpdateOpportunityStatus(ctx context.Context, id int, status models.OpportunityStatus) error
	GetOpportunities(ctx context.Context, ownerID int) ([]models.Opportunity, error)

	CreateProposal(ctx context.Context, p *models.Proposal) error
	GetProposal(ctx context.Context, id int) (*models.Proposal, error)
	UpdateProposalStatus(ctx context.Context, id int, from, to models.ProposalStatus) error
	CounterProposal(ctx context.Context, id int, price float64, quantity, message string) error
	AcceptProposal(ctx context.Context, proposalID int) (*models.Contract, error)
	GetUserProposals(ctx context.Context, userID int) ([]models.ProposalView, error)

	GetContract(ctx context.Context, id int) (*models.Contract, error)
	UpdateContractStatus(ctx context.Context, id int, status models.ContractStatus) error
	GetUserContracts(ctx context.Context, userID int) ([]models.ContractView, error)
	GetMarketStats(ctx context.Context, userID int) (*models.MarketStats, error)

	CreateMessage(ctx context.Context, m *models.Message) error
	GetConversationMessages(ctx context.Context, userID, contactID int) ([]models.Message, error)
	GetConversations(ctx context.Context, userID int) ([]models.Conversation, error)

	CreateNotification(ctx context.Context, n *models.Notification) (bool, error)
	GetUserNotifications(ctx context.Context, userID int) ([]models.Notification, error)
	MarkNotificationsRead(ctx context.Context, userID int) error
	DeleteUserNotifications(ctx context.Context, userID int) error

	CreatePost(ctx context.Context, p *models.Post) error
	GetPost(ctx context.Context, id int) (*models.Post, error)
	GetFeed(ctx context.Context, viewerID, limit, offset int) ([]models.PostView, error)
	ToggleLike(ctx context.Context, postID, userID int) (bool, error)
	CreateComment(ctx context.Context, c *models.Comment) error
	GetPostComments(ctx context.Context, postID int) ([]models.Comment, error)

	Follow(ctx context.Context, followerID, followingID int) (bool, error)
	Unfollow(ctx context.Context, followerID, followingID int) error

	CreateProduct(ctx context.Context, p *models.Product) error
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	GetProducts(ctx context.Context, limit, offset int) ([]models.Product, error)
	CreateProductComment(ctx context.Context, c *models.ProductComment) error
	GetProductComment(ctx context.Context, id int) (*models.ProductComment, error)
	GetProductComments(ctx context.Context, productID int) ([]models.ProductComment, error)
}
