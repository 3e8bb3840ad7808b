package folio_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/stretchr/testify/require"
)

// fetchStatus requests an image URL relative to the container.
func fetchStatus(t *testing.T, client *foliosdk.Client, imageURL string) int {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, client.BaseURL+imageURL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

// TestBlogImageLifecycle walks a blog through create, image replacement and
// delete, checking the stored images on disk follow the record.
func TestBlogImageLifecycle(t *testing.T) {
	client := setupFolioContainer(t)
	admin := bootstrapAdmin(t, client)
	ctx := t.Context()

	blog, err := admin.CreateContent(ctx, foliosdk.KindBlog, foliosdk.ContentRequest{
		Title:      "Shipping a portfolio",
		Content:    "Notes on building and deploying the site.",
		Categories: []string{"go", "web"},
	}, pngImage("cover.png"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, fetchStatus(t, client, blog.Image))

	first := blog.Image
	updated, err := admin.UpdateContent(ctx, foliosdk.KindBlog, blog.ID, foliosdk.ContentRequest{}, pngImage("cover2.png"))
	require.NoError(t, err)
	require.NotEqual(t, first, updated.Image)
	require.Equal(t, blog.Title, updated.Title)
	require.Equal(t, http.StatusNotFound, fetchStatus(t, client, first), "Replaced image should be removed")
	require.Equal(t, http.StatusOK, fetchStatus(t, client, updated.Image))

	page, err := client.ListContent(ctx, foliosdk.KindBlog, 1)
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)

	require.NoError(t, admin.DeleteContent(ctx, foliosdk.KindBlog, blog.ID))
	require.Equal(t, http.StatusNotFound, fetchStatus(t, client, updated.Image), "Deleted blog image should be removed")

	_, err = client.GetContent(ctx, foliosdk.KindBlog, blog.ID)
	assertAPIError(t, err, http.StatusNotFound, foliosdk.ErrorCodeNotFound)
}

// TestVisitorInteractions covers what a registered non-admin can do.
func TestVisitorInteractions(t *testing.T) {
	client := setupFolioContainer(t)
	admin := bootstrapAdmin(t, client)
	visitor, me := registerUser(t, client, "visitor")
	ctx := t.Context()

	blog, err := admin.CreateContent(ctx, foliosdk.KindBlog, foliosdk.ContentRequest{
		Title:   "Hello visitors",
		Content: "Leave a comment or a like below.",
	}, nil)
	require.NoError(t, err)

	_, err = visitor.CreateContent(ctx, foliosdk.KindSkill, foliosdk.ContentRequest{
		Title:   "Not allowed",
		Content: "Visitors cannot publish content.",
	}, nil)
	assertAPIError(t, err, http.StatusForbidden, foliosdk.ErrorCodeForbidden)

	liked, err := visitor.LikeBlog(ctx, blog.ID)
	require.NoError(t, err)
	require.Equal(t, 1, liked.Likes)
	require.Contains(t, liked.LikedBy, me.ID)

	comment, err := visitor.CreateComment(ctx, foliosdk.CommentRequest{BlogID: blog.ID, Text: "Great post"})
	require.NoError(t, err)

	comments, err := client.ListComments(ctx, blog.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, comment.ID, comments[0].ID)

	_, err = visitor.SendMessage(ctx, "Are you available for contract work?")
	require.NoError(t, err)

	_, err = visitor.ListMessages(ctx)
	assertAPIError(t, err, http.StatusForbidden, foliosdk.ErrorCodeForbidden)

	inbox, err := admin.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, inbox, 1)

	// Deleting the blog takes its comments with it.
	require.NoError(t, admin.DeleteContent(ctx, foliosdk.KindBlog, blog.ID))
	_, err = client.ListComments(ctx, blog.ID)
	assertAPIError(t, err, http.StatusNotFound, foliosdk.ErrorCodeNotFound)
}

// TestProfilePicture replaces a user's default picture with an upload.
func TestProfilePicture(t *testing.T) {
	client := setupFolioContainer(t)
	session, user := registerUser(t, client, "pictured")
	ctx := t.Context()

	require.Equal(t, "/api/Media/default.webp", user.ProfilePic)

	updated, err := session.UpdateProfilePicture(ctx, user.ID, *pngImage("me.png"))
	require.NoError(t, err)
	require.NotEqual(t, user.ProfilePic, updated.ProfilePic)
	require.Equal(t, http.StatusOK, fetchStatus(t, client, updated.ProfilePic))

	require.NoError(t, session.DeleteUser(ctx, user.ID))
	require.Equal(t, http.StatusNotFound, fetchStatus(t, client, updated.ProfilePic))
}
