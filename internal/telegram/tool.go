package telegram

import "strings"

// MarkdownV2 中需要转义的字符
var markdownV2Escaper = strings.NewReplacer(
	`\`, `\\`, "_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`,
	"~", `\~`, "`", "\\`", ">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`, "=", `\=`,
	"|", `\|`, "{", `\{`, "}", `\}`, ".", `\.`, "!", `\!`,
)

// 代码块内只需转义反引号和反斜杠
var codeEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`")

func escapeMarkdownV2(input string) string {
	return markdownV2Escaper.Replace(input)
}

func escapeCode(input string) string {
	return codeEscaper.Replace(input)
}
