package synth

import "fmt"

// Shape is the runtime primitive a member's recorder is built on. Its String
// is the primitive's type name in runtime/mockrt.
type Shape uint8

const (
	ShapeNone Shape = iota

	// methods with parameters
	ShapeMethod
	ShapeThrowingMethod
	ShapeAsyncMethod
	ShapeAsyncThrowingMethod
	ShapeVoidMethod
	ShapeVoidThrowingMethod
	ShapeAsyncVoidMethod
	ShapeAsyncVoidThrowingMethod

	// methods without parameters
	ShapeFunc
	ShapeThrowingFunc
	ShapeAsyncFunc
	ShapeAsyncThrowingFunc
	ShapeVoidFunc
	ShapeVoidThrowingFunc
	ShapeAsyncVoidFunc
	ShapeAsyncVoidThrowingFunc

	// properties
	ShapeReadOnlyProperty
	ShapeThrowingReadOnlyProperty
	ShapeAsyncReadOnlyProperty
	ShapeAsyncThrowingReadOnlyProperty
	ShapeProperty
	ShapeThrowingProperty
	ShapeAsyncProperty
	ShapeAsyncThrowingProperty
)

var shapeNames = [...]string{
	ShapeNone:                          "None",
	ShapeMethod:                        "Method",
	ShapeThrowingMethod:                "ThrowingMethod",
	ShapeAsyncMethod:                   "AsyncMethod",
	ShapeAsyncThrowingMethod:           "AsyncThrowingMethod",
	ShapeVoidMethod:                    "VoidMethod",
	ShapeVoidThrowingMethod:            "VoidThrowingMethod",
	ShapeAsyncVoidMethod:               "AsyncVoidMethod",
	ShapeAsyncVoidThrowingMethod:       "AsyncVoidThrowingMethod",
	ShapeFunc:                          "Func",
	ShapeThrowingFunc:                  "ThrowingFunc",
	ShapeAsyncFunc:                     "AsyncFunc",
	ShapeAsyncThrowingFunc:             "AsyncThrowingFunc",
	ShapeVoidFunc:                      "VoidFunc",
	ShapeVoidThrowingFunc:              "VoidThrowingFunc",
	ShapeAsyncVoidFunc:                 "AsyncVoidFunc",
	ShapeAsyncVoidThrowingFunc:         "AsyncVoidThrowingFunc",
	ShapeReadOnlyProperty:              "ReadOnlyProperty",
	ShapeThrowingReadOnlyProperty:      "ThrowingReadOnlyProperty",
	ShapeAsyncReadOnlyProperty:         "AsyncReadOnlyProperty",
	ShapeAsyncThrowingReadOnlyProperty: "AsyncThrowingReadOnlyProperty",
	ShapeProperty:                      "Property",
	ShapeThrowingProperty:              "ThrowingProperty",
	ShapeAsyncProperty:                 "AsyncProperty",
	ShapeAsyncThrowingProperty:         "AsyncThrowingProperty",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", s)
}

type shapeFlags uint8

const (
	flagThrows shapeFlags = 1 << iota
	flagAsync
	flagVoid
	flagNoParams
)

// methodShapes is indexed by flagThrows|flagAsync|flagVoid|flagNoParams.
var methodShapes = [16]Shape{
	0:                                                ShapeMethod,
	flagThrows:                                       ShapeThrowingMethod,
	flagAsync:                                        ShapeAsyncMethod,
	flagAsync | flagThrows:                           ShapeAsyncThrowingMethod,
	flagVoid:                                         ShapeVoidMethod,
	flagVoid | flagThrows:                            ShapeVoidThrowingMethod,
	flagVoid | flagAsync:                             ShapeAsyncVoidMethod,
	flagVoid | flagAsync | flagThrows:                ShapeAsyncVoidThrowingMethod,
	flagNoParams:                                     ShapeFunc,
	flagNoParams | flagThrows:                        ShapeThrowingFunc,
	flagNoParams | flagAsync:                         ShapeAsyncFunc,
	flagNoParams | flagAsync | flagThrows:            ShapeAsyncThrowingFunc,
	flagNoParams | flagVoid:                          ShapeVoidFunc,
	flagNoParams | flagVoid | flagThrows:             ShapeVoidThrowingFunc,
	flagNoParams | flagVoid | flagAsync:              ShapeAsyncVoidFunc,
	flagNoParams | flagVoid | flagAsync | flagThrows: ShapeAsyncVoidThrowingFunc,
}

// propertyShapes is indexed by flagThrows|flagAsync plus 4 for read-write.
var propertyShapes = [8]Shape{
	ShapeReadOnlyProperty,
	ShapeThrowingReadOnlyProperty,
	ShapeAsyncReadOnlyProperty,
	ShapeAsyncThrowingReadOnlyProperty,
	ShapeProperty,
	ShapeThrowingProperty,
	ShapeAsyncProperty,
	ShapeAsyncThrowingProperty,
}

func flagsOf(async, throws bool) shapeFlags {
	var f shapeFlags
	if async {
		f |= flagAsync
	}
	if throws {
		f |= flagThrows
	}
	return f
}

// MethodShape selects the primitive for a method.
func MethodShape(returns, async, throws, hasParams bool) Shape {
	f := flagsOf(async, throws)
	if !returns {
		f |= flagVoid
	}
	if !hasParams {
		f |= flagNoParams
	}
	return methodShapes[f]
}

// PropertyShape selects the primitive for a property. Setters are always
// synchronous and non-throwing, so only the getter's effects count.
func PropertyShape(settable, async, throws bool) Shape {
	i := int(flagsOf(async, throws))
	if settable {
		i += 4
	}
	return propertyShapes[i]
}

func (s Shape) IsProperty() bool {
	return s >= ShapeReadOnlyProperty && s <= ShapeAsyncThrowingProperty
}

func (s Shape) IsMethod() bool {
	return s >= ShapeMethod && s <= ShapeAsyncVoidThrowingFunc
}

// HasParams reports whether the primitive records an argument tuple.
func (s Shape) HasParams() bool {
	return s >= ShapeMethod && s <= ShapeAsyncVoidThrowingMethod
}

// Returns reports whether invoking the primitive yields a value.
func (s Shape) Returns() bool {
	switch s {
	case ShapeVoidMethod, ShapeVoidThrowingMethod, ShapeAsyncVoidMethod, ShapeAsyncVoidThrowingMethod,
		ShapeVoidFunc, ShapeVoidThrowingFunc, ShapeAsyncVoidFunc, ShapeAsyncVoidThrowingFunc, ShapeNone:
		return false
	}
	return true
}
