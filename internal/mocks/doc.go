// Package mocks provides centralized mock implementations for testing.
//
// Store mocks are built on testify/mock and are configured with On/Return.
// The auth mocks use function fields with default values, which keeps
// handler tests short:
//
//	import "github.com/phrazzld/notes-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    jwtSvc := &mocks.MockJWTService{
//	        ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	            return &auth.Claims{Username: "dave"}, nil
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
