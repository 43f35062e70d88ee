package rust

import "strings"

// Node kinds recognized from the tree-sitter-rust grammar. Only the kinds
// the passes and the module inliner actually dispatch on are named here.
const (
	KindSourceFile           = "source_file"
	KindModItem              = "mod_item"
	KindDeclarationList      = "declaration_list"
	KindImplItem             = "impl_item"
	KindStructItem           = "struct_item"
	KindFieldDeclarationList = "field_declaration_list"
	KindFieldDeclaration     = "field_declaration"
	KindEnumItem             = "enum_item"
	KindEnumVariantList      = "enum_variant_list"
	KindEnumVariant          = "enum_variant"
	KindBlock                = "block"
	KindAttributeItem        = "attribute_item"
	KindInnerAttributeItem   = "inner_attribute_item"
	KindAttribute            = "attribute"
	KindLineComment          = "line_comment"
	KindBlockComment         = "block_comment"
	KindIdentifier           = "identifier"
	KindScopedIdentifier     = "scoped_identifier"
	KindTokenTree            = "token_tree"
)

// PlaceholderBlock is the canonical block body substituted by the block
// clearing pass, equivalent in shape to `{ unimplemented!() }`.
const PlaceholderBlock = "{ unimplemented!() }"

// IsPlaceholderBlock reports whether content (the raw text of a block node)
// already is the unimplemented placeholder, ignoring surrounding whitespace.
func IsPlaceholderBlock(content string) bool {
	return strings.TrimSpace(content) == PlaceholderBlock
}

// IsAttrTrivia reports whether kind is any node kind that can precede a
// declaration as an attribute or doc comment: attribute_item,
// inner_attribute_item, line_comment, or block_comment.
func IsAttrTrivia(kind string) bool {
	switch kind {
	case KindAttributeItem, KindInnerAttributeItem, KindLineComment, KindBlockComment:
		return true
	default:
		return false
	}
}

// IsOuterAttrTrivia reports whether kind/content is attribute trivia that
// attaches to the declaration that follows it (outer attributes and `///`
// doc comments), as opposed to inner attributes that attach to whatever
// contains them.
func IsOuterAttrTrivia(kind, content string) bool {
	switch kind {
	case KindAttributeItem:
		return true
	case KindLineComment:
		return strings.HasPrefix(content, "///") && !strings.HasPrefix(content, "////")
	case KindBlockComment:
		return strings.HasPrefix(content, "/**") && !strings.HasPrefix(content, "/***")
	default:
		return false
	}
}

// IsInnerAttrTrivia reports whether kind/content is attribute trivia that
// attaches to the enclosing item instead of the following declaration
// (inner attributes and `//!`/`/*!` doc comments).
func IsInnerAttrTrivia(kind, content string) bool {
	switch kind {
	case KindInnerAttributeItem:
		return true
	case KindLineComment:
		return strings.HasPrefix(content, "//!")
	case KindBlockComment:
		return strings.HasPrefix(content, "/*!")
	default:
		return false
	}
}

// IsDocTrivia reports whether kind/content is a doc-attribute or a doc
// comment: a `#[doc...]`/`#![doc...]` attribute, or a `///`, `//!`, `/**`,
// `/*!` comment. syn desugars all of these into `#[doc]` attributes; the
// tree-sitter CST keeps them as distinct siblings, so the passes check both
// shapes directly instead of relying on a desugaring step.
func IsDocTrivia(kind, content string, path string) bool {
	switch kind {
	case KindAttributeItem, KindInnerAttributeItem:
		return path == "doc"
	case KindLineComment:
		return strings.HasPrefix(content, "///") || strings.HasPrefix(content, "//!")
	case KindBlockComment:
		return strings.HasPrefix(content, "/**") || strings.HasPrefix(content, "/*!")
	default:
		return false
	}
}
