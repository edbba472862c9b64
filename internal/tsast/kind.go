package tsast

// Kind is the closed set of syntax kinds the transpiler distinguishes.
// Every grammar node maps to exactly one Kind; nodes the transpiler does not
// care about map to KindOther.
type Kind int

const (
	KindOther Kind = iota
	KindProgram
	KindComment
	KindError

	// declarations
	KindExportStatement
	KindAmbientDeclaration
	KindInterfaceDeclaration
	KindTypeAliasDeclaration
	KindLexicalDeclaration
	KindVariableDeclaration
	KindVariableDeclarator
	KindExtendsTypeClause
	KindObjectType
	KindPropertySignature
	KindMethodSignature
	KindIndexSignature
	KindCallSignature
	KindConstructSignature
	KindFormalParameters
	KindRequiredParameter
	KindOptionalParameter
	KindRestPattern
	KindTypeParameters
	KindTypeParameter
	KindConstraint
	KindTypeArguments
	KindTypeAnnotation

	// names
	KindIdentifier
	KindPropertyIdentifier
	KindTypeIdentifier
	KindNestedTypeIdentifier
	KindStringLiteral
	KindNumberLiteral
	KindComputedPropertyName
	KindThis

	// keywords
	KindAnyKeyword
	KindBooleanKeyword
	KindNumberKeyword
	KindStringKeyword
	KindSymbolKeyword
	KindVoidKeyword
	KindUnknownKeyword
	KindNeverKeyword
	KindObjectKeyword
	KindUndefinedKeyword
	KindNullKeyword
	KindBigintKeyword

	// type expressions
	KindGenericType
	KindUnionType
	KindIntersectionType
	KindArrayType
	KindTupleType
	KindFunctionType
	KindConstructorType
	KindParenthesizedType
	KindLookupType
	KindIndexTypeQuery
	KindTypeQuery
	KindLiteralType
	KindTemplateLiteralType
	KindConditionalType
	KindReadonlyType
	KindNullableType
	KindTrueLiteral
	KindFalseLiteral
)

var kindNames = map[Kind]string{
	KindOther:                "Other",
	KindProgram:              "Program",
	KindComment:              "Comment",
	KindError:                "Error",
	KindExportStatement:      "ExportStatement",
	KindAmbientDeclaration:   "AmbientDeclaration",
	KindInterfaceDeclaration: "InterfaceDeclaration",
	KindTypeAliasDeclaration: "TypeAliasDeclaration",
	KindLexicalDeclaration:   "LexicalDeclaration",
	KindVariableDeclaration:  "VariableDeclaration",
	KindVariableDeclarator:   "VariableDeclarator",
	KindExtendsTypeClause:    "ExtendsTypeClause",
	KindObjectType:           "ObjectType",
	KindPropertySignature:    "PropertySignature",
	KindMethodSignature:      "MethodSignature",
	KindIndexSignature:       "IndexSignature",
	KindCallSignature:        "CallSignature",
	KindConstructSignature:   "ConstructSignature",
	KindFormalParameters:     "FormalParameters",
	KindRequiredParameter:    "RequiredParameter",
	KindOptionalParameter:    "OptionalParameter",
	KindRestPattern:          "RestPattern",
	KindTypeParameters:       "TypeParameters",
	KindTypeParameter:        "TypeParameter",
	KindConstraint:           "Constraint",
	KindTypeArguments:        "TypeArguments",
	KindTypeAnnotation:       "TypeAnnotation",
	KindIdentifier:           "Identifier",
	KindPropertyIdentifier:   "PropertyIdentifier",
	KindTypeIdentifier:       "TypeIdentifier",
	KindNestedTypeIdentifier: "NestedTypeIdentifier",
	KindStringLiteral:        "StringLiteral",
	KindNumberLiteral:        "NumberLiteral",
	KindComputedPropertyName: "ComputedPropertyName",
	KindThis:                 "This",
	KindAnyKeyword:           "AnyKeyword",
	KindBooleanKeyword:       "BooleanKeyword",
	KindNumberKeyword:        "NumberKeyword",
	KindStringKeyword:        "StringKeyword",
	KindSymbolKeyword:        "SymbolKeyword",
	KindVoidKeyword:          "VoidKeyword",
	KindUnknownKeyword:       "UnknownKeyword",
	KindNeverKeyword:         "NeverKeyword",
	KindObjectKeyword:        "ObjectKeyword",
	KindUndefinedKeyword:     "UndefinedKeyword",
	KindNullKeyword:          "NullKeyword",
	KindBigintKeyword:        "BigintKeyword",
	KindGenericType:          "GenericType",
	KindUnionType:            "UnionType",
	KindIntersectionType:     "IntersectionType",
	KindArrayType:            "ArrayType",
	KindTupleType:            "TupleType",
	KindFunctionType:         "FunctionType",
	KindConstructorType:      "ConstructorType",
	KindParenthesizedType:    "ParenthesizedType",
	KindLookupType:           "LookupType",
	KindIndexTypeQuery:       "IndexTypeQuery",
	KindTypeQuery:            "TypeQuery",
	KindLiteralType:          "LiteralType",
	KindTemplateLiteralType:  "TemplateLiteralType",
	KindConditionalType:      "ConditionalType",
	KindReadonlyType:         "ReadonlyType",
	KindNullableType:         "NullableType",
	KindTrueLiteral:          "TrueLiteral",
	KindFalseLiteral:         "FalseLiteral",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Other"
}

// grammarKinds maps tree-sitter-typescript node types to kinds. Types whose
// kind depends on their text (predefined_type, literal_type) are handled in
// classify.
var grammarKinds = map[string]Kind{
	"program":                   KindProgram,
	"comment":                   KindComment,
	"ERROR":                     KindError,
	"export_statement":          KindExportStatement,
	"ambient_declaration":       KindAmbientDeclaration,
	"interface_declaration":     KindInterfaceDeclaration,
	"type_alias_declaration":    KindTypeAliasDeclaration,
	"lexical_declaration":       KindLexicalDeclaration,
	"variable_declaration":      KindVariableDeclaration,
	"variable_declarator":       KindVariableDeclarator,
	"extends_type_clause":       KindExtendsTypeClause,
	"extends_clause":            KindExtendsTypeClause,
	"interface_body":            KindObjectType,
	"object_type":               KindObjectType,
	"property_signature":        KindPropertySignature,
	"method_signature":          KindMethodSignature,
	"index_signature":           KindIndexSignature,
	"call_signature":            KindCallSignature,
	"construct_signature":       KindConstructSignature,
	"formal_parameters":         KindFormalParameters,
	"required_parameter":        KindRequiredParameter,
	"optional_parameter":        KindOptionalParameter,
	"rest_pattern":              KindRestPattern,
	"type_parameters":           KindTypeParameters,
	"type_parameter":            KindTypeParameter,
	"constraint":                KindConstraint,
	"type_arguments":            KindTypeArguments,
	"type_annotation":           KindTypeAnnotation,
	"identifier":                KindIdentifier,
	"property_identifier":       KindPropertyIdentifier,
	"type_identifier":           KindTypeIdentifier,
	"nested_type_identifier":    KindNestedTypeIdentifier,
	"string":                    KindStringLiteral,
	"number":                    KindNumberLiteral,
	"computed_property_name":    KindComputedPropertyName,
	"this":                      KindThis,
	"true":                      KindTrueLiteral,
	"false":                     KindFalseLiteral,
	"null":                      KindNullKeyword,
	"undefined":                 KindUndefinedKeyword,
	"generic_type":              KindGenericType,
	"union_type":                KindUnionType,
	"intersection_type":         KindIntersectionType,
	"array_type":                KindArrayType,
	"tuple_type":                KindTupleType,
	"function_type":             KindFunctionType,
	"constructor_type":          KindConstructorType,
	"parenthesized_type":        KindParenthesizedType,
	"lookup_type":               KindLookupType,
	"index_type_query":          KindIndexTypeQuery,
	"type_query":                KindTypeQuery,
	"literal_type":              KindLiteralType,
	"template_literal_type":     KindTemplateLiteralType,
	"conditional_type":          KindConditionalType,
	"readonly_type":             KindReadonlyType,
	"optional_type":             KindNullableType,
	"flow_maybe_type":           KindNullableType,
	"existential_type":          KindAnyKeyword,
	"type_predicate_annotation": KindTypeAnnotation,
	"type_predicate":            KindBooleanKeyword,
}

var predefinedKinds = map[string]Kind{
	"any":       KindAnyKeyword,
	"boolean":   KindBooleanKeyword,
	"number":    KindNumberKeyword,
	"string":    KindStringKeyword,
	"symbol":    KindSymbolKeyword,
	"void":      KindVoidKeyword,
	"unknown":   KindUnknownKeyword,
	"never":     KindNeverKeyword,
	"object":    KindObjectKeyword,
	"bigint":    KindBigintKeyword,
	"undefined": KindUndefinedKeyword,
	"null":      KindNullKeyword,
}

// classify resolves the kind of a grammar node. Named nodes only: anonymous
// tokens ("{", "?", "extends") are KindOther.
func classify(grammarType, text string, named bool) Kind {
	if !named {
		return KindOther
	}
	switch grammarType {
	case "predefined_type":
		if k, ok := predefinedKinds[text]; ok {
			return k
		}
		return KindOther
	case "type_identifier":
		// `undefined` in type position is parsed as a plain identifier
		if text == "undefined" {
			return KindUndefinedKeyword
		}
		return KindTypeIdentifier
	}
	if k, ok := grammarKinds[grammarType]; ok {
		return k
	}
	return KindOther
}

// IsTypeReference reports whether k names a (possibly generic) type.
func (k Kind) IsTypeReference() bool {
	return k == KindTypeIdentifier || k == KindGenericType || k == KindNestedTypeIdentifier
}

// IsAbsence reports whether k denotes an absent value (undefined or null).
func (k Kind) IsAbsence() bool {
	return k == KindUndefinedKeyword || k == KindNullKeyword
}
