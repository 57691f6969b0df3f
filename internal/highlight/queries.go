package highlight

// The queries below are deliberately modest subsets of each grammar's
// community highlights.scm: common keywords, literals, comments, and
// identifiers, using the grammars' actual node type names. Capture names
// follow the vscode-scope convention scopeTranslation expects
// (keyword.control, entity.name.function, string.quoted, ...).

const goHighlightQuery = `
(comment) @comment.line

(interpreted_string_literal) @string.quoted
(raw_string_literal) @string.quoted
(rune_literal) @string.quoted
(int_literal) @constant.numeric
(float_literal) @constant.numeric

(func_declaration name: (identifier) @entity.name.function)
(method_declaration name: (field_identifier) @entity.name.function)
(call_expression function: (identifier) @entity.name.function)
(call_expression function: (selector_expression field: (field_identifier) @entity.name.function))

(type_identifier) @entity.name.type
(type_declaration name: (type_identifier) @entity.name.type)

(parameter_declaration name: (identifier) @variable.parameter)

[
  "func" "return" "if" "else" "for" "range" "switch" "case" "default"
  "break" "continue" "go" "defer" "select" "var" "const" "type" "struct"
  "interface" "package" "import" "map" "chan" "fallthrough" "goto"
] @keyword.control

["(" ")" "[" "]" "{" "}"] @punctuation.bracket
[ "," "." ";" ":"] @punctuation.delimiter
`

const rustHighlightQuery = `
(line_comment) @comment.line
(block_comment) @comment.block

(string_literal) @string.quoted
(char_literal) @string.quoted
(integer_literal) @constant.numeric
(float_literal) @constant.numeric

(function_item name: (identifier) @entity.name.function)
(call_expression function: (identifier) @entity.name.function)
(call_expression function: (field_expression field: (field_identifier) @entity.name.function))
(macro_invocation macro: (identifier) @entity.name.function.macro)

(type_identifier) @entity.name.type
(primitive_type) @entity.name.type

(parameter pattern: (identifier) @variable.parameter)

[
  "fn" "let" "mut" "return" "if" "else" "match" "for" "in" "while" "loop"
  "break" "continue" "struct" "enum" "impl" "trait" "pub" "use" "mod"
  "const" "static" "ref" "move" "async" "await" "unsafe"
] @keyword.control

["(" ")" "[" "]" "{" "}"] @punctuation.bracket
[ "," "." ";" "::" ":"] @punctuation.delimiter
`

const pythonHighlightQuery = `
(comment) @comment.line

(string) @string.quoted
(integer) @constant.numeric
(float) @constant.numeric

(function_definition name: (identifier) @entity.name.function)
(call function: (identifier) @entity.name.function)
(call function: (attribute attribute: (identifier) @entity.name.function))

(class_definition name: (identifier) @entity.name.type)

(parameters (identifier) @variable.parameter)

[
  "def" "return" "if" "elif" "else" "for" "while" "break" "continue"
  "class" "import" "from" "as" "with" "try" "except" "finally" "raise"
  "yield" "lambda" "global" "nonlocal" "pass" "assert" "del"
] @keyword.control

["(" ")" "[" "]" "{" "}"] @punctuation.bracket
[ "," "." ":" ";"] @punctuation.delimiter
`

const jsHighlightQuery = `
(comment) @comment.line

(string) @string.quoted
(template_string) @string.quoted
(number) @constant.numeric
(regex) @string.special

(function_declaration name: (identifier) @entity.name.function)
(method_definition name: (property_identifier) @entity.name.function)
(call_expression function: (identifier) @entity.name.function)
(call_expression function: (member_expression property: (property_identifier) @entity.name.function))

(class_declaration name: (identifier) @entity.name.type)

(jsx_opening_element name: (identifier) @entity.name.tag)
(jsx_closing_element name: (identifier) @entity.name.tag)

[
  "function" "return" "if" "else" "for" "while" "break" "continue" "class"
  "import" "from" "export" "default" "const" "let" "var" "new" "try"
  "catch" "finally" "throw" "switch" "case" "typeof" "instanceof" "async"
  "await" "yield" "of" "in"
] @keyword.control

["(" ")" "[" "]" "{" "}"] @punctuation.bracket
[ "," "." ";" ":"] @punctuation.delimiter
`
