package handlers

import (
	"net/http"
	"strconv"

	"agrocore/models"

	"github.com/go-chi/chi/v5"
)

// CreatePostHandler handles POST /api/posts.
func (h *Handler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	var post models.Post
	if !h.decodeBody(w, r, &post) {
		return
	}

	if err := h.Store.CreatePost(r.Context(), &post); err != nil {
		writeStorageError(w, err, "user not found")
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// GetFeedHandler handles GET /api/posts?userId=.
func (h *Handler) GetFeedHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)
	viewerID, _ := strconv.Atoi(r.URL.Query().Get("userId"))

	posts, err := h.Store.GetFeed(r.Context(), viewerID, params.Limit, params.Offset)
	if err != nil {
		writeStorageError(w, err, "posts not found")
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// ToggleLikeHandler handles POST /api/posts/{postId}/like. A like notifies
// the post author; the toggle-off does not.
func (h *Handler) ToggleLikeHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(chi.URLParam(r, "postId"))
	if err != nil || postID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid postId")
		return
	}

	var input struct {
		UserID int `json:"userId" validate:"required"`
	}
	if !h.decodeBody(w, r, &input) {
		return
	}

	post, err := h.Store.GetPost(r.Context(), postID)
	if err != nil {
		writeStorageError(w, err, "post not found")
		return
	}

	liked, err := h.Store.ToggleLike(r.Context(), postID, input.UserID)
	if err != nil {
		writeStorageError(w, err, "post not found")
		return
	}
	if liked {
		h.notify(r.Context(), post.UserID, input.UserID, models.NotifyLike, postID)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

// CreateCommentHandler handles POST /api/posts/{postId}/comments. Comments
// thread through parentId and notify the post author.
func (h *Handler) CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(chi.URLParam(r, "postId"))
	if err != nil || postID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid postId")
		return
	}

	var comment models.Comment
	if !h.decodeBody(w, r, &comment) {
		return
	}
	comment.PostID = postID

	post, err := h.Store.GetPost(r.Context(), postID)
	if err != nil {
		writeStorageError(w, err, "post not found")
		return
	}

	if err := h.Store.CreateComment(r.Context(), &comment); err != nil {
		writeStorageError(w, err, "post not found")
		return
	}
	h.notify(r.Context(), post.UserID, comment.UserID, models.NotifyComment, postID)

	writeJSON(w, http.StatusCreated, comment)
}

// GetCommentsHandler handles GET /api/posts/{postId}/comments.
func (h *Handler) GetCommentsHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(chi.URLParam(r, "postId"))
	if err != nil || postID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid postId")
		return
	}

	comments, err := h.Store.GetPostComments(r.Context(), postID)
	if err != nil {
		writeStorageError(w, err, "post not found")
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

// FollowHandler handles POST /api/follow. Insert-ignore: following an already
// followed user changes nothing and raises no second notification.
func (h *Handler) FollowHandler(w http.ResponseWriter, r *http.Request) {
	var conn models.Connection
	if !h.decodeBody(w, r, &conn) {
		return
	}
	if conn.FollowerID == conn.FollowingID {
		writeError(w, http.StatusBadRequest, "cannot follow yourself")
		return
	}

	created, err := h.Store.Follow(r.Context(), conn.FollowerID, conn.FollowingID)
	if err != nil {
		writeStorageError(w, err, "user not found")
		return
	}
	if created {
		h.notify(r.Context(), conn.FollowingID, conn.FollowerID, models.NotifyFollow, conn.FollowerID)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"following": true})
}

// UnfollowHandler handles DELETE /api/follow.
func (h *Handler) UnfollowHandler(w http.ResponseWriter, r *http.Request) {
	var conn models.Connection
	if !h.decodeBody(w, r, &conn) {
		return
	}

	if err := h.Store.Unfollow(r.Context(), conn.FollowerID, conn.FollowingID); err != nil {
		writeStorageError(w, err, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"following": false})
}
