// Package client is the HTTP client used by the ops app to talk to its
// backend.
//
// A Client joins request paths to a base URL, sends JSON with the client's
// default headers (including the bearer token set at sign-in), bounds every
// attempt with a timeout, and retries once, after a fixed delay, when an
// attempt gets no response or a 5xx status. Responses with any status below
// 500 are returned to the caller unchanged; interpreting 4xx bodies is the
// caller's job.
//
//	c, err := client.NewFromEnv()
//	if err != nil {
//		return err
//	}
//	c.SetAuthHeader(token)
//	resp, err := c.Get(ctx, "/lieux")
//	switch {
//	case client.IsTimeout(err):
//		// ...
//	case err != nil:
//		// ...
//	}
package client
