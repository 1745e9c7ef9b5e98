// Package reqparse declares request arguments so that they can be documented
// as operation parameters.
//
//	parser := reqparse.NewParser(
//	    reqparse.Argument{Name: "page", Type: reflect.TypeFor[int](), Help: "Page number"},
//	    reqparse.Argument{Name: "avatar", Type: reflect.TypeFor[*multipart.FileHeader](), Location: reqparse.Files},
//	)
//
// Arguments keep their declaration order. The parser only describes
// arguments; reading them from a request is left to the handler.
package reqparse
