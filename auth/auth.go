// Package auth decides whether a submitted credential pair may enter the
// inventory view.
package auth

// Verifier checks a username and password.
type Verifier interface {
	Verify(username, password string) bool
}

// VerifierFunc adapts a plain function to Verifier.
type VerifierFunc func(username, password string) bool

func (f VerifierFunc) Verify(username, password string) bool {
	return f(username, password)
}

// StaticVerifier accepts exactly one configured pair. Credentials are compared
// in clear text and an empty username or password never verifies.
type StaticVerifier struct {
	Username string
	Password string
}

func (v StaticVerifier) Verify(username, password string) bool {
	if username == "" || password == "" {
		return false
	}
	return username == v.Username && password == v.Password
}
