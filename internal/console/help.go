package console

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"dekarrin/replaykk/internal/misc"
)

const helpWidth = 80

func buildHelpCommandName(name string) string {
	c := commands[name]
	allNames := strings.Join(commands.getAllAliasesOf(name), "/")
	colName := allNames + " "
	if c.helpInvoke != "" {
		colName += c.helpInvoke + " "
	}
	return colName
}

func writeHelpForCommand(name string, sb *strings.Builder, descWidth int, leftColumnWidth int, nameSuffix string) {
	helpDescLines := misc.WrapText(commands[name].helpDesc, descWidth)
	helpDescLines = misc.JustifyBlock(helpDescLines, descWidth)

	cmdName := buildHelpCommandName(name)
	sb.WriteString(cmdName)
	sb.WriteString(strings.Repeat(" ", leftColumnWidth-(utf8.RuneCountInString(cmdName)+utf8.RuneCountInString(nameSuffix))))
	sb.WriteString(nameSuffix)
	if len(helpDescLines) > 0 {
		sb.WriteString(helpDescLines[0])
	}
	sb.WriteRune('\n')
	for i := 1; i < len(helpDescLines); i++ {
		sb.WriteString(strings.Repeat(" ", leftColumnWidth))
		sb.WriteString(helpDescLines[i])
		sb.WriteRune('\n')
	}
}

func showHelp(topic string) string {
	var sb strings.Builder
	nameSuffix := "- "

	if topic != "" {
		topic = strings.ToUpper(topic)
		cmd, ok := commands[topic]
		if !ok {
			return fmt.Sprintf("Unknown command %q; try just HELP for a list of commands", topic)
		}
		if cmd.aliasFor != "" {
			topic = cmd.aliasFor
		}

		leftColumnWidth := utf8.RuneCountInString(buildHelpCommandName(topic)) + utf8.RuneCountInString(nameSuffix)
		writeHelpForCommand(topic, &sb, descWidthFor(leftColumnWidth), leftColumnWidth, nameSuffix)
		return strings.TrimSuffix(sb.String(), "\n")
	}

	leftColumnWidth := -1
	for name, c := range commands {
		if c.aliasFor != "" {
			continue
		}
		colName := buildHelpCommandName(name)
		if utf8.RuneCountInString(colName) > leftColumnWidth {
			leftColumnWidth = utf8.RuneCountInString(colName)
		}
	}
	leftColumnWidth += utf8.RuneCountInString(nameSuffix)
	descWidth := descWidthFor(leftColumnWidth)

	sb.WriteString("Commands:\n")
	for _, name := range commands.names() {
		if commands[name].aliasFor != "" {
			continue
		}
		if name == "HELP" || name == "EXIT" { // special cases; these come at the end
			continue
		}
		writeHelpForCommand(name, &sb, descWidth, leftColumnWidth, nameSuffix)
	}
	writeHelpForCommand("HELP", &sb, descWidth, leftColumnWidth, nameSuffix)
	writeHelpForCommand("EXIT", &sb, descWidth, leftColumnWidth, nameSuffix)
	sb.WriteRune('\n')

	suffix := `Arguments are split like a shell would split them, so a key with spaces in
		it can be given in quotes. Keys are always shown quoted the same way. Replay
		files for PUT and NEW are YAML documents.`

	suffixLines := misc.WrapText(suffix, helpWidth)
	suffixLines = misc.JustifyBlock(suffixLines, helpWidth)
	sb.WriteString(strings.Join(suffixLines, "\n"))
	return sb.String()
}

func descWidthFor(leftColumnWidth int) int {
	descWidth := helpWidth - leftColumnWidth
	if descWidth < 20 {
		descWidth = 20
	}
	return descWidth
}
