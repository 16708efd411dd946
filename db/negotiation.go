package db

import (
	"context"
	"database/sql"

	"agrocore/models"
)

// Opportunities

func (s *Storage) CreateOpportunity(ctx context.Context, o *models.Opportunity) error {
	query := `
        INSERT INTO opportunities
            (user_id, product_name, quantity, quality, price, deadline, requirements, status)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, 'active')
        RETURNING id, status, created_at`
	return s.db.QueryRowContext(ctx, query,
		o.UserID, o.ProductName, o.Quantity, o.Quality, o.Price, o.Deadline, o.Requirements).
		Scan(&o.ID, &o.Status, &o.CreatedAt)
}

func (s *Storage) GetOpportunity(ctx context.Context, id int) (*models.Opportunity, error) {
	o := &models.Opportunity{}
	query := `SELECT * FROM opportunities WHERE id=$1`
	err := s.db.GetContext(ctx, o, query, id)
	return o, err
}

func (s *Storage) UpdateOpportunityStatus(ctx context.Context, id int, status models.OpportunityStatus) error {
	query := `UPDATE opportunities SET status=$1 WHERE id=$2`
	_, err := s.db.ExecContext(ctx, query, status, id)
	return err
}

// GetOpportunities returns active opportunities plus, when ownerID > 0, that
// owner's opportunities regardless of status.
func (s *Storage) GetOpportunities(ctx context.Context, ownerID int) ([]models.Opportunity, error) {
	query := `
        SELECT * FROM opportunities
        WHERE status = 'active' OR user_id = $1
        ORDER BY created_at DESC`
	opportunities := []models.Opportunity{}
	err := s.db.SelectContext(ctx, &opportunities, query, ownerID)
	return opportunities, err
}

// Proposals

func (s *Storage) CreateProposal(ctx context.Context, p *models.Proposal) error {
	query := `
        INSERT INTO proposals
            (opportunity_id, seller_id, price, quantity_offered, quality,
             delivery_date, payment_terms, transport_included, message, status)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending')
        RETURNING id, status, created_at`
	return s.db.QueryRowContext(ctx, query,
		p.OpportunityID, p.SellerID, p.Price, p.QuantityOffered, p.Quality,
		p.DeliveryDate, p.PaymentTerms, p.TransportIncluded, p.Message).
		Scan(&p.ID, &p.Status, &p.CreatedAt)
}

func (s *Storage) GetProposal(ctx context.Context, id int) (*models.Proposal, error) {
	p := &models.Proposal{}
	query := `SELECT * FROM proposals WHERE id=$1`
	err := s.db.GetContext(ctx, p, query, id)
	return p, err
}

// UpdateProposalStatus flips status only when the proposal still holds the
// expected one, so concurrent transitions cannot race past each other.
func (s *Storage) UpdateProposalStatus(ctx context.Context, id int, from, to models.ProposalStatus) error {
	query := `UPDATE proposals SET status=$1 WHERE id=$2 AND status=$3`
	res, err := s.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidState
	}
	return nil
}

// CounterProposal overwrites the negotiable terms in place and moves the
// proposal to countered. Prior terms are not retained.
func (s *Storage) CounterProposal(ctx context.Context, id int, price float64, quantity, message string) error {
	query := `
        UPDATE proposals
        SET price=$1, quantity_offered=$2, message=$3, status='countered'
        WHERE id=$4 AND status='pending'`
	res, err := s.db.ExecContext(ctx, query, price, quantity, message, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidState
	}
	return nil
}

// AcceptProposal marks the proposal accepted and creates its contract in one
// transaction. The unique proposal_id plus ON CONFLICT DO NOTHING makes the
// operation idempotent: a proposal can never spawn a second contract.
func (s *Storage) AcceptProposal(ctx context.Context, proposalID int) (*models.Contract, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE proposals SET status='accepted' WHERE id=$1 AND status='pending'`, proposalID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrInvalidState
	}

	c := &models.Contract{}
	query := `
        INSERT INTO contracts (proposal_id, buyer_id, seller_id, price, quantity, status, start_date)
        SELECT p.id, o.user_id, p.seller_id, p.price, p.quantity_offered, 'active', NOW()
        FROM proposals p
        JOIN opportunities o ON o.id = p.opportunity_id
        WHERE p.id = $1
        ON CONFLICT (proposal_id) DO NOTHING
        RETURNING id, proposal_id, buyer_id, seller_id, price, quantity, status, start_date`
	err = tx.QueryRowxContext(ctx, query, proposalID).StructScan(c)
	if err == sql.ErrNoRows {
		// Contract already existed for this proposal.
		return nil, ErrInvalidState
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

// GetUserProposals returns every proposal the user is party to, either as the
// seller or as the buyer owning the opportunity. The direction column is the
// documented sent/received partition: a proposal counts as "sent" only while
// the seller views it and it is not sitting countered in their court.
func (s *Storage) GetUserProposals(ctx context.Context, userID int) ([]models.ProposalView, error) {
	query := `
        SELECT p.*,
               o.product_name,
               o.user_id AS buyer_id,
               ub.name AS buyer_name,
               us.name AS seller_name,
               CASE WHEN p.seller_id = $1 AND p.status <> 'countered'
                    THEN 'sent' ELSE 'received' END AS direction
        FROM proposals p
        JOIN opportunities o ON o.id = p.opportunity_id
        JOIN users ub ON ub.id = o.user_id
        JOIN users us ON us.id = p.seller_id
        WHERE p.seller_id = $1 OR o.user_id = $1
        ORDER BY p.created_at DESC`
	proposals := []models.ProposalView{}
	err := s.db.SelectContext(ctx, &proposals, query, userID)
	return proposals, err
}

// Contracts

func (s *Storage) GetContract(ctx context.Context, id int) (*models.Contract, error) {
	c := &models.Contract{}
	query := `SELECT * FROM contracts WHERE id=$1`
	err := s.db.GetContext(ctx, c, query, id)
	return c, err
}

func (s *Storage) UpdateContractStatus(ctx context.Context, id int, status models.ContractStatus) error {
	query := `
        UPDATE contracts
        SET status=$1,
            end_date=CASE WHEN $1 IN ('completed', 'cancelled') THEN NOW() END
        WHERE id=$2`
	_, err := s.db.ExecContext(ctx, query, status, id)
	return err
}

func (s *Storage) GetUserContracts(ctx context.Context, userID int) ([]models.ContractView, error) {
	query := `
        SELECT c.*,
               o.product_name,
               ub.name AS buyer_name,
               us.name AS seller_name
        FROM contracts c
        JOIN proposals p ON p.id = c.proposal_id
        JOIN opportunities o ON o.id = p.opportunity_id
        JOIN users ub ON ub.id = c.buyer_id
        JOIN users us ON us.id = c.seller_id
        WHERE c.buyer_id = $1 OR c.seller_id = $1
        ORDER BY c.start_date DESC`
	contracts := []models.ContractView{}
	err := s.db.SelectContext(ctx, &contracts, query, userID)
	return contracts, err
}

// GetMarketStats aggregates the dashboard counters in one round trip.
func (s *Storage) GetMarketStats(ctx context.Context, userID int) (*models.MarketStats, error) {
	stats := &models.MarketStats{}
	query := `
        SELECT
            (SELECT COUNT(*) FROM users WHERE profile_type = 'buyer') AS buyers,
            (SELECT COUNT(*) FROM opportunities WHERE status = 'active') AS opportunities,
            (SELECT COUNT(*) FROM proposals p
             JOIN opportunities o ON o.id = p.opportunity_id
             WHERE p.seller_id = $1 OR o.user_id = $1) AS proposals,
            (SELECT COUNT(*) FROM contracts WHERE buyer_id = $1 OR seller_id = $1) AS contracts`
	err := s.db.GetContext(ctx, stats, query, userID)
	return stats, err
}
