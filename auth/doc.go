// Package auth wires credential handling into an httpapi client: a token
// store abstraction with in-memory and file-backed implementations, plus
// the standard interceptors a host application registers at setup.
//
//	store := auth.NewFileStore(filepath.Join(home, ".myapp", "session.json"))
//
//	client := httpapi.New(
//	    httpapi.WithBaseURL(cfg.APIBaseURL),
//	    httpapi.WithRequestInterceptor(auth.BearerInterceptor(store)),
//	    httpapi.WithResponseInterceptor(httpapi.UnwrapEnvelope()),
//	    httpapi.WithErrorInterceptor(auth.UnauthorizedInterceptor(store, gotoLogin)),
//	)
//
// On a 401 response the unauthorized interceptor clears both stored
// credential keys and invokes the redirect hook; the error still reaches
// the caller.
package auth
