package ports

// CallerClaims is the verified identity attached to an inbound request.
// The engine itself never inspects tokens; it receives the subject as an
// explicit caller parameter.
type CallerClaims struct {
	Subject string
}

type TokenVerifier interface {
	Verify(token string) (CallerClaims, error)
}
