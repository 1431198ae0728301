package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2word"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // enum values
	FileExts []string // file extensions without dot
	Inline   bool     // value only accepted as --flag=value
}

// commandDef describes a command for completion.
type commandDef struct {
	Name     string
	Desc     string
	Flags    []flagDef
	FileExts []string // positional file arguments, nil if none
}

// completionMeta holds completion hints the FlagSet cannot express.
type completionMeta struct {
	Values   func() []string
	FileExts []string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"highlight":  {Values: highlightValues},
	"log-level":  {Values: func() []string { return []string{"debug", "info", "warn", "error"} }},
	"log-format": {Values: func() []string { return []string{"text", "json"} }},

	"config":   {FileExts: []string{"yaml", "yml"}},
	"init":     {FileExts: []string{"yaml", "yml"}},
	"env-file": {FileExts: []string{"env"}},

	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// highlightValues lists every value --highlight accepts.
func highlightValues() []string {
	return append([]string{highlightOff}, md2word.HighlightStyles()...)
}

// extractFlags converts a FlagSet into completion definitions.
func extractFlags(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:   f.Name,
			Short:  f.Shorthand,
			Desc:   f.Usage,
			Inline: f.NoOptDefVal != "" && f.Value.Type() != "bool",
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case meta.Values != nil:
				fd.Type = flagEnum
				fd.Values = meta.Values()
			case len(meta.FileExts) > 0:
				fd.Type = flagFile
				fd.FileExts = meta.FileExts
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags come from the same registration the parsers use.
func getCommands() []commandDef {
	convertFS := flag.NewFlagSet("convert", flag.ContinueOnError)
	registerConvertFlags(convertFS, &convertFlags{})
	serveFS := flag.NewFlagSet("serve", flag.ContinueOnError)
	registerServeFlags(serveFS, &serveFlags{})
	configFS := flag.NewFlagSet("config", flag.ContinueOnError)
	registerConfigFlags(configFS, &configFlags{})
	doctorFS := flag.NewFlagSet("doctor", flag.ContinueOnError)
	registerDoctorFlags(doctorFS, &doctorFlags{})

	return []commandDef{
		{Name: "convert", Desc: "Convert markdown to styled HTML", Flags: extractFlags(convertFS), FileExts: []string{"md", "markdown"}},
		{Name: "serve", Desc: "Run the web interface", Flags: extractFlags(serveFS)},
		{Name: "config", Desc: "Show the effective configuration", Flags: extractFlags(configFS)},
		{Name: "doctor", Desc: "Check the setup", Flags: extractFlags(doctorFS)},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w, getCommands())
	case ShellZsh:
		return generateZsh(w, getCommands())
	case ShellFish:
		return generateFish(w, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: completion takes one shell, got %q", ErrUsage, args)
	}
	if err := GenerateCompletion(env.Stdout, Shell(args[0])); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func flagWords(flags []flagDef) string {
	var words []string
	for _, f := range flags {
		if f.Inline {
			words = append(words, "--"+f.Long, "--"+f.Long+"=")
		} else {
			words = append(words, "--"+f.Long)
		}
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# bash completion for md2word\n\n")
	b.WriteString("_md2word() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("        return\n    fi\n\n")

	// --flag=value splits into "--flag" "=" "value" with the default COMP_WORDBREAKS.
	b.WriteString("    if [[ \"$prev\" == \"=\" ]]; then\n")
	b.WriteString("        prev=\"${COMP_WORDS[COMP_CWORD-2]}=\"\n")
	b.WriteString("    elif [[ \"$cur\" == \"=\" ]]; then\n")
	b.WriteString("        prev=\"${COMP_WORDS[COMP_CWORD-1]}=\"\n")
	b.WriteString("        cur=\"\"\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		switch {
		case c.Name == "completion":
			b.WriteString("    completion)\n")
			b.WriteString("        COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\"))\n")
			b.WriteString("        ;;\n")
			continue
		case c.Name == "help":
			b.WriteString("    help)\n")
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", commandNames(cmds))
			b.WriteString("        ;;\n")
			continue
		case len(c.Flags) == 0:
			continue
		}

		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        case \"$prev\" in\n")
		for _, f := range c.Flags {
			if f.Type == flagBool {
				continue
			}
			pattern := "--" + f.Long + "="
			if !f.Inline {
				pattern += "|--" + f.Long
			}
			if f.Short != "" {
				pattern += "|-" + f.Short
			}
			fmt.Fprintf(&b, "        %s)\n", pattern)
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\"))\n", strings.Join(f.FileExts, "|"))
			case flagDir:
				b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
			default:
				b.WriteString("            COMPREPLY=()\n")
			}
			b.WriteString("            return\n            ;;\n")
		}
		b.WriteString("        esac\n")
		b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", flagWords(c.Flags))
		if len(c.FileExts) > 0 {
			b.WriteString("        else\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\") $(compgen -d -- \"$cur\"))\n", strings.Join(c.FileExts, "|"))
		}
		b.WriteString("        fi\n")
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -o filenames -F _md2word md2word\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

var zshEscaper = strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")

func zshFlagSpec(f flagDef) string {
	desc := zshEscaper.Replace(f.Desc)

	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":file:_files -g '*.(" + strings.Join(f.FileExts, "|") + ")'"
	case flagDir:
		action = ":directory:_files -/"
	case flagInt:
		action = ":number:"
	default:
		action = ":value:"
	}

	if f.Inline {
		// Optional argument in the same word.
		return fmt.Sprintf("'--%s=-[%s]:%s'", f.Long, desc, action)
	}
	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
	}
	return fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action)
}

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("#compdef md2word\n\n")
	b.WriteString("_md2word() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscaper.Replace(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    _arguments -C '1:command:->command' '*::arg:->args'\n\n")
	b.WriteString("    case $state in\n")
	b.WriteString("    command)\n")
	b.WriteString("        _describe -t commands 'md2word command' commands\n")
	b.WriteString("        ;;\n")
	b.WriteString("    args)\n")
	b.WriteString("        case $words[1] in\n")
	for _, c := range cmds {
		switch c.Name {
		case "completion":
			b.WriteString("        completion)\n            _values 'shell' bash zsh fish\n            ;;\n")
			continue
		case "help":
			b.WriteString("        help)\n            _describe -t commands 'md2word command' commands\n            ;;\n")
			continue
		}
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            _arguments \\\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "                %s \\\n", zshFlagSpec(f))
		}
		if len(c.FileExts) > 0 {
			fmt.Fprintf(&b, "                '*:markdown:_files -g \"*.(%s)\"'\n", strings.Join(c.FileExts, "|"))
		} else {
			b.WriteString("                && return 0\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("        esac\n")
	b.WriteString("        ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_md2word \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

var fishEscaper = strings.NewReplacer("'", "\\'")

func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# fish completion for md2word\n\n")
	b.WriteString("complete -c md2word -f\n\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c md2word -n '__fish_use_subcommand' -a %s -d '%s'\n", c.Name, fishEscaper.Replace(c.Desc))
	}
	b.WriteString("\n")
	b.WriteString("complete -c md2word -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'\n")
	fmt.Fprintf(&b, "complete -c md2word -n '__fish_seen_subcommand_from help' -a '%s'\n", commandNames(cmds))

	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		b.WriteString("\n")
		cond := fmt.Sprintf("-n '__fish_seen_subcommand_from %s'", c.Name)
		for _, ext := range c.FileExts {
			fmt.Fprintf(&b, "complete -c md2word %s -k -a '(__fish_complete_suffix .%s)'\n", cond, ext)
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c md2word %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				line += fmt.Sprintf(" -r -F -a '(__fish_complete_suffix .%s)'", f.FileExts[0])
			case flagDir:
				line += " -r -a '(__fish_complete_directories)'"
			case flagInt, flagString:
				line += " -x"
			}
			line += fmt.Sprintf(" -d '%s'", fishEscaper.Replace(f.Desc))
			b.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2word completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:  eval \"$(md2word completion bash)\"          # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:   eval \"$(md2word completion zsh)\"           # in ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:  md2word completion fish > ~/.config/fish/completions/md2word.fish")
}
