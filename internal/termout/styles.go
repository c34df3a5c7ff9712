package termout

import "github.com/charmbracelet/lipgloss"

// Styles 终端输出中各元素的样式
type Styles struct {
	Heading lipgloss.Style
	Bold    lipgloss.Style
	Link    lipgloss.Style
	URL     lipgloss.Style
	Code    lipgloss.Style
	Emoji   lipgloss.Style
	Symbol  lipgloss.Style
	Header  lipgloss.Style // 表头
}

// DefaultStyles returns the colored default theme.
func DefaultStyles() *Styles {
	return &Styles{
		// 标题：青色 + 粗体
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		Bold:    lipgloss.NewStyle().Bold(true),
		// 链接：蓝色 + 下划线
		Link: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
		URL:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		// 行内代码：黄色文字 + 深色背景
		Code:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Background(lipgloss.Color("237")),
		Emoji:  lipgloss.NewStyle(),
		Symbol: lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
		Header: lipgloss.NewStyle().Bold(true),
	}
}

// PlainStyles returns styles that leave text untouched, for pipes and files.
func PlainStyles() *Styles {
	return &Styles{}
}
