package backend

// Backend is the table of syntax primitives for one target language. The
// renderer and the emitter decide what to build; a Backend only spells it.
// Every method is pure and safe for concurrent use.
type Backend interface {
	// Name is the identifier used on the command line, e.g. "kotlin".
	Name() string
	// FileExtension of generated files, including the dot.
	FileExtension() string

	// VarName converts a manifest name into a property or accessor name.
	VarName(name string) string
	// ClassName converts a manifest name into a type name.
	ClassName(name string) string
	// Root returns the closure parameter holding the configuration provider
	// and the expression for the enclosing runtime context derived from it.
	Root() (accessor, context string)
	// Subscope derives the accessor a nested record is constructed with.
	Subscope(accessor, name string) string

	Bool(b bool) string
	// Int receives the exact decimal digits of an integer, with sign. ok is
	// false when the digits do not fit the language's integer type.
	Int(digits string) (lit string, ok bool)
	// Float receives a decimal that already carries a fraction or exponent.
	// ok is false when it is outside the range of the language's float type.
	Float(digits string) (lit string, ok bool)
	String(s string) string
	// Text renders a string resource lookup. ok is false when the language
	// has no resource mechanism.
	Text(context, resourceID string) (expr string, ok bool)
	// Image renders a drawable resource lookup. ok is false when the
	// language cannot express images.
	Image(context, name string) (expr string, ok bool)
	// EnumCase qualifies a variant. context is passed for languages that
	// qualify through the enclosing scope.
	EnumCase(context, enum, variant string) string
	Null() string
	List(items []string) string
	Map(entries []MapEntry) string
	Record(class, accessor string, args []Argument) string

	// Registration spells one feature's deferred initializer block.
	Registration(reg Registration) string
	// Registry wraps the registration blocks in the registry accessor.
	Registry(objectName string, blocks []string) string
	// File wraps a registry in a complete source file.
	File(header FileHeader, registry string) string
}

// MapEntry is one rendered key/value pair.
type MapEntry struct {
	Key   string
	Value string
}

// Argument is one named constructor argument. Name is already converted with
// VarName.
type Argument struct {
	Name  string
	Value string
}

// Registration describes the block binding a feature accessor to a closure
// that constructs the feature when the runtime first asks for it.
type Registration struct {
	Accessor string // feature accessor on the registry, e.g. homescreen
	Param    string // closure parameter receiving the provider, e.g. variables
	Class    string // feature constructor, e.g. Homescreen
	Args     []Argument
}

// FileHeader carries the manifest metadata a generated file mentions.
type FileHeader struct {
	ObjectName  string
	Package     string
	Description string
}
