package db

import (
	"context"

	"agrocore/models"
)

// Posts

func (s *Storage) CreatePost(ctx context.Context, p *models.Post) error {
	query := `
        INSERT INTO posts (user_id, content, image_url)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query, p.UserID, p.Content, p.ImageURL).
		Scan(&p.ID, &p.CreatedAt)
}

func (s *Storage) GetPost(ctx context.Context, id int) (*models.Post, error) {
	p := &models.Post{}
	query := `SELECT * FROM posts WHERE id=$1`
	err := s.db.GetContext(ctx, p, query, id)
	return p, err
}

// GetFeed returns the feed with author name, engagement counts and the
// viewer's like flag resolved in a single query.
func (s *Storage) GetFeed(ctx context.Context, viewerID, limit, offset int) ([]models.PostView, error) {
	query := `
        SELECT p.*,
               u.name AS author_name,
               (SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id) AS like_count,
               (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count,
               EXISTS (SELECT 1 FROM post_likes l WHERE l.post_id = p.id AND l.user_id = $1) AS liked_by_me
        FROM posts p
        JOIN users u ON u.id = p.user_id
        ORDER BY p.created_at DESC
        LIMIT $2 OFFSET $3`
	posts := []models.PostView{}
	err := s.db.SelectContext(ctx, &posts, query, viewerID, limit, offset)
	return posts, err
}

// Likes

// ToggleLike inserts or removes the like and reports whether the post is now
// liked by the user.
func (s *Storage) ToggleLike(ctx context.Context, postID, userID int) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id=$1 AND user_id=$2`, postID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	res, err = s.db.ExecContext(ctx,
		`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)
         ON CONFLICT (post_id, user_id) DO NOTHING`, postID, userID)
	if err != nil {
		return false, err
	}
	n, err = res.RowsAffected()
	if err != nil {
		return false, err
	}
	// A racing toggle-on that lost to the conflict did not create the like.
	return n > 0, nil
}

// Comments

func (s *Storage) CreateComment(ctx context.Context, c *models.Comment) error {
	query := `
        INSERT INTO comments (post_id, user_id, parent_id, content)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query, c.PostID, c.UserID, c.ParentID, c.Content).
		Scan(&c.ID, &c.CreatedAt)
}

func (s *Storage) GetPostComments(ctx context.Context, postID int) ([]models.Comment, error) {
	query := `
        SELECT c.*, u.name AS author_name
        FROM comments c
        JOIN users u ON u.id = c.user_id
        WHERE c.post_id = $1
        ORDER BY c.created_at ASC`
	comments := []models.Comment{}
	err := s.db.SelectContext(ctx, &comments, query, postID)
	return comments, err
}

// Connections (follow edges)

// Follow is insert-ignore: a second follow of the same pair changes nothing
// and reports created=false.
func (s *Storage) Follow(ctx context.Context, followerID, followingID int) (bool, error) {
	query := `
        INSERT INTO connections (follower_id, following_id)
        VALUES ($1, $2)
        ON CONFLICT (follower_id, following_id) DO NOTHING`
	res, err := s.db.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Storage) Unfollow(ctx context.Context, followerID, followingID int) error {
	query := `DELETE FROM connections WHERE follower_id=$1 AND following_id=$2`
	_, err := s.db.ExecContext(ctx, query, followerID, followingID)
	return err
}

// Products

func (s *Storage) CreateProduct(ctx context.Context, p *models.Product) error {
	query := `
        INSERT INTO products (user_id, name, description, price, unit, image_url)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query,
		p.UserID, p.Name, p.Description, p.Price, p.Unit, p.ImageURL).
		Scan(&p.ID, &p.CreatedAt)
}

func (s *Storage) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	p := &models.Product{}
	query := `SELECT * FROM products WHERE id=$1`
	err := s.db.GetContext(ctx, p, query, id)
	return p, err
}

func (s *Storage) GetProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	query := `SELECT * FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products, query, limit, offset)
	return products, err
}

// Product comments

func (s *Storage) CreateProductComment(ctx context.Context, c *models.ProductComment) error {
	query := `
        INSERT INTO product_comments (product_id, user_id, parent_id, content)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query, c.ProductID, c.UserID, c.ParentID, c.Content).
		Scan(&c.ID, &c.CreatedAt)
}

func (s *Storage) GetProductComment(ctx context.Context, id int) (*models.ProductComment, error) {
	c := &models.ProductComment{}
	query := `SELECT pc.*, u.name AS author_name
              FROM product_comments pc
              JOIN users u ON u.id = pc.user_id
              WHERE pc.id=$1`
	err := s.db.GetContext(ctx, c, query, id)
	return c, err
}

func (s *Storage) GetProductComments(ctx context.Context, productID int) ([]models.ProductComment, error) {
	query := `
        SELECT pc.*, u.name AS author_name
        FROM product_comments pc
        JOIN users u ON u.id = pc.user_id
        WHERE pc.product_id = $1
        ORDER BY pc.created_at ASC`
	comments := []models.ProductComment{}
	err := s.db.SelectContext(ctx, &comments, query, productID)
	return comments, err
}
