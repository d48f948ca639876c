// Package dynjson provides a dynamic JSON value model and a coercive,
// multi-key decoder for loosely structured JSON.
//
// The package uses an internal package for implementation details:
//
//   - internal: path splitting, the JSON number grammar, ASCII output
//     escaping and per-type metadata caching
//
// Most users can simply import the root package:
//
//	import "github.com/cybergodev/dynjson"
//
// # Basic Usage
//
// Parsing and safe navigation. Lookups never panic; a failed step yields a
// Null value carrying the first error of the chain:
//
//	v := dynjson.Parse(`{"user":{"name":"John","tags":["a","b"]}}`)
//	name, ok := v.Key("user").Key("name").AsString()
//	tag := v.Get("user", "tags", 1).StringValue()
//	missing := v.GetPath("user.email")
//	if !missing.Exists() {
//		log.Println(missing.Err())
//	}
//
// Building and mutating:
//
//	v := dynjson.Object(map[string]dynjson.Value{"id": dynjson.Int(7)})
//	v.SetKey("name", dynjson.String("John"))
//	err := v.Merge(dynjson.Parse(`{"tags":["x"]}`))
//	out, err := v.RawString(dynjson.WithPrettyPrint(true))
//
// Coercive decoding with candidate keys:
//
//	dec := dynjson.NewDecoder(dynjson.WithRegistry(dynjson.NewStandardRegistry()))
//	id, err := dynjson.Decode[int64](dec, v, "user_id", "userId", "data.user.id")
//	email, ok := dynjson.DecodeIfPresent[string](dec, v, "email", "contact.email")
//
// Struct decoding:
//
//	type User struct {
//		ID    int64     `dynjson:"user_id|userId|data.user.id,required"`
//		Since time.Time `dynjson:"created_at|createdAt"`
//	}
//	var u User
//	err := dec.DecodeStruct(v, &u)
//
// # Configuration
//
// Serializer defaults can be loaded from the environment:
//
//	cfg, err := dynjson.ConfigFromEnv()
//	out, err := v.RawData(cfg.WriteOptions())
//
// # Key Features
//
//   - Errors travel with values, so chained lookups are safe
//   - Literal-preserving numbers: 1 and 1.0 serialize as written
//   - Insertion-ordered objects with order-insensitive equality
//   - Depth-limited lenient serialization and ASCII-only output
//   - Candidate keys with dot-path fallback and pluggable converters
//   - JSON Schema validation and YAML interop
//
// # Core Types Organization
//
//   - value.go: Value, constructors and classification of native data
//   - accessors.go: optional (AsX) and coercive (XValue) projections
//   - navigate.go: index, key and path access and assignment
//   - serialize.go: RawString, RawData and the json interfaces
//   - resolve.go: Lookup, Decode, DecodeIfPresent and Resolve
//   - decoder.go: Decoder sessions and struct decoding
//   - converter.go: Converter, Registry and the built-in converters
package dynjson
