package voting

// Authorizer confirms that the current invocation is authorized by
// `address`. It returns `errors.Unauthorized` when not.
type Authorizer interface {
	RequireAuth(address string) error
}
