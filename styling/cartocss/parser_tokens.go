package cartocss

const (
	TokenEndStatement = ';'
	TokenSpace        = ' '
	TokenTab          = '\t'
	TokenCarriageRet  = '\r'
	TokenNewLine      = '\n'
	TokenOpenBlock    = '{'
	TokenCloseBlock   = '}'
	TokenVariable     = '@'
	TokenListSep      = ','
	TokenAssign       = ':'
)

// 2-char tokens
const (
	TokenOpenBlockComment  = "/*"
	TokenCloseBlockComment = "*/"
	TokenOpenLineComment   = "//"
)
