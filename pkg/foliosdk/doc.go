/*
Package foliosdk is a client for the folio portfolio API and the home of the
JSON types its handlers speak.

# Client vs Session

Client performs the anonymous calls: registration, login, reading content
and comments, health checks and bootstrap. Login returns a Session that
carries the bearer token for everything else:

	client := foliosdk.NewClient("https://folio.example.com")

	session, err := client.Login(ctx, "alice@example.com", "Passw0rd!")
	if err != nil {
		return err
	}

	me, err := session.Me(ctx)

	post, err := session.CreateContent(ctx, foliosdk.KindBlog, foliosdk.ContentRequest{
		Title:   "Hello there",
		Content: "A first post that is long enough",
	}, nil)

# Errors

Every non-2xx response is returned as an *APIError carrying the HTTP status
and the stable error kind:

	var apiErr *foliosdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == foliosdk.ErrorCodeForbidden {
		// not allowed
	}
*/
package foliosdk
