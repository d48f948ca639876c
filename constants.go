package dynjson

const (
	// Serializer limits
	DefaultMaxObjectDepth = 10
	MaxAllowedObjectDepth = 1000
	DefaultIndent         = "  "

	// Parser limits
	DefaultMaxParseDepth = 512
	MaxAllowedParseDepth = 10000

	// Decoder limits: nesting of the target type, counting each slice,
	// map, struct and pointer level
	DefaultMaxDecodeDepth = 64

	// Environment variables read by ConfigFromEnv
	EnvMaxObjectDepth = "DYNJSON_MAX_OBJECT_DEPTH"
	EnvMaxParseDepth  = "DYNJSON_MAX_PARSE_DEPTH"
	EnvPrettyPrint    = "DYNJSON_PRETTY"
	EnvIndent         = "DYNJSON_INDENT"
	EnvCastNilToNull  = "DYNJSON_CAST_NIL_TO_NULL"
	EnvEscapeHTML     = "DYNJSON_ESCAPE_HTML"
)

// truthyStrings are the lower-cased strings a String value coerces to true.
var truthyStrings = map[string]struct{}{
	"true": {},
	"y":    {},
	"t":    {},
	"yes":  {},
	"1":    {},
}
