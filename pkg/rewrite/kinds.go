package rewrite

// Node kind strings produced by the tree-sitter JavaScript grammar
// (github.com/alexaandru/go-sitter-forest/javascript) that the classifier
// and rule engine dispatch on. Kept as named constants, never inline string
// literals, so a grammar-version bump only touches this file.
const (
	kindProgram           = "program"
	kindExpressionStmt    = "expression_statement"
	kindVariableDecl      = "variable_declaration"
	kindLexicalDecl       = "lexical_declaration"
	kindVariableDtor      = "variable_declarator"
	kindFunctionDecl      = "function_declaration"
	kindFunctionExpr      = "function_expression"
	kindGeneratorFnDecl   = "generator_function_declaration"
	kindGeneratorFnExpr   = "generator_function"
	kindArrowFunction     = "arrow_function"
	kindMethodDefinition  = "method_definition"
	kindClassDecl         = "class_declaration"
	kindReturnStmt        = "return_statement"
	kindCallExpr          = "call_expression"
	kindChainExpr         = "chain_expression"
	kindMemberExpr        = "member_expression"
	kindSubscriptExpr     = "subscript_expression"
	kindIdentifier        = "identifier"
	kindParenthesized     = "parenthesized_expression"
	kindUnaryExpr         = "unary_expression"
	kindAwaitExpr         = "await_expression"
	kindAssignmentExpr    = "assignment_expression"
	kindAugAssignmentExpr = "augmented_assignment_expression"
	kindForStmt           = "for_statement"
	kindForInStmt         = "for_in_statement"
	kindFormalParameters  = "formal_parameters"
	kindAssignmentPattern = "assignment_pattern"
	kindObjectPattern     = "object_pattern"
	kindArrayPattern      = "array_pattern"
	kindRestPattern       = "rest_pattern"
	kindPairPattern       = "pair_pattern"
	kindShorthandPropPat  = "shorthand_property_identifier_pattern"
	kindShorthandProp     = "shorthand_property_identifier"
	kindAsync             = "async"
	kindTypeofOperator    = "typeof"
	kindDeleteOperator    = "delete"
	kindStatementBlock    = "statement_block"
	kindHashBangLine      = "hash_bang_line"
	kindString            = "string"
)

// identifierLikeKinds are node kinds identifierReferenceOf (§4.1) treats as
// "a bare identifier reference".
var identifierLikeKinds = map[string]bool{ //nolint:gochecknoglobals // fixed classification table
	kindIdentifier: true,
}

// functionLikeKinds are the node kinds enclosingFunction (§3, "enclosing-function
// relation") stops the upward search at.
var functionLikeKinds = map[string]bool{ //nolint:gochecknoglobals // fixed classification table
	kindFunctionDecl:     true,
	kindFunctionExpr:     true,
	kindGeneratorFnDecl:  true,
	kindGeneratorFnExpr:  true,
	kindArrowFunction:    true,
	kindMethodDefinition: true,
}
