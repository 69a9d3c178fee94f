// Package httpclient provides HTTP client utilities for the authload tool.
//
// # Request Building
//
// [NewFormRequest] builds the form-encoded POSTs the registration and
// login endpoints expect:
//
//	req, err := httpclient.NewFormRequest(ctx, target, form)
//	if err != nil {
//		return err
//	}
//
// # HTTP Client
//
// The [NewClient] function creates an HTTP client optimized for load
// generation, with connection pooling sized for many concurrent
// sessions against a single host:
//
//	client := httpclient.NewClient(30 * time.Second)
//	resp, err := client.Do(req)
package httpclient
