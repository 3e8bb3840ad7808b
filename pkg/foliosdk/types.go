package foliosdk

import "time"

// Kind selects one of the content collections.
type Kind string

const (
	KindBlog    Kind = "blog"
	KindSkill   Kind = "skill"
	KindProject Kind = "project"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	// Error is the stable error kind (e.g. "validation_error", "forbidden")
	Error string `json:"error"`

	// ErrorDescription is a human-readable message
	ErrorDescription string `json:"error_description"`

	// Fields holds per-field validation messages, keyed by JSON field name
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageResponse acknowledges operations that return no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Users
// ============================================================================

// RegisterRequest is the body of POST /api/user/register.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// LoginRequest is the body of POST /api/user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token issued on login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserUpdateRequest is a patch: omitted fields are left untouched. Role is
// honoured for admins only.
type UserUpdateRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Password  *string `json:"password,omitempty"`
	Role      *string `json:"role,omitempty"`
}

// UserResponse is the public view of an account. The password hash is never
// serialised.
type UserResponse struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	ProfilePic string    `json:"profilePic"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ============================================================================
// Content
// ============================================================================

// ContentRequest creates or patches a blog, skill or project. For updates,
// empty fields are left untouched.
type ContentRequest struct {
	Title      string   `json:"title,omitempty"`
	Content    string   `json:"content,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// ContentResponse is one blog, skill or project.
type ContentResponse struct {
	ID           string    `json:"id"`
	Kind         Kind      `json:"kind"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Image        string    `json:"image"`
	Author       string    `json:"author"`
	Categories   []string  `json:"categories"`
	LikedBy      []string  `json:"likedBy"`
	SharedBy     []string  `json:"sharedBy"`
	Likes        int       `json:"likes"`
	Shares       int       `json:"shares"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ContentPage is one page of a content listing.
type ContentPage struct {
	Items      []ContentResponse `json:"items"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Total      int               `json:"total"`
}

// ============================================================================
// Comments and messages
// ============================================================================

// CommentRequest is the body of POST /api/comments.
type CommentRequest struct {
	BlogID string `json:"blogId"`
	Text   string `json:"text"`
}

// CommentUpdateRequest is the body of PUT /api/comments/{id}.
type CommentUpdateRequest struct {
	Text string `json:"text"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	BlogID    string    `json:"blogId"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactRequest is the body of POST /api/messages.
type ContactRequest struct {
	Text string `json:"text"`
}

type ContactResponse struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// ============================================================================
// Bootstrap and health
// ============================================================================

// BootstrapRequest describes the first administrator.
type BootstrapRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status"`

	// Uptime is the service uptime (e.g. "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	Version string `json:"version,omitempty"`

	// Checks is only populated by /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of each dependency.
type HealthChecks struct {
	Database string `json:"database"`
}
