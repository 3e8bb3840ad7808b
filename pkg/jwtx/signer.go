package jwtx

// Signer is anything that can turn claims into a compact JWT.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}
