package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/staranto/xeroctlgo/internal/meta"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `# bash completion for xeroctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_xeroctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "aq bq ca cache cq ia iq oq pa pq qq rq completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --cache-ttl --color -c --filter -f --human --local --no-cache --output -o --sort -s --titles -t --tldr --tenant --client-id --client-secret"

    case "$cmd" in
    aq)
      local opts="$common --schema --where"
            ;;
        bq)
      local opts="$common --schema --limit -l --where"
            ;;
        ca)
      local opts="$common --email --first --last --name"
            ;;
        cache)
      local opts="stats clear invalidate"
            ;;
        cq)
      local opts="$common --schema --limit -l --search --where"
            ;;
        ia)
      local opts="$common --file"
            ;;
        iq)
      local opts="$common --schema --contact --limit -l --status --where"
            ;;
        oq)
      local opts="$common --schema"
            ;;
        pa)
      local opts="$common --account --amount --date --invoice"
            ;;
        pq)
      local opts="$common --schema --limit -l --where"
            ;;
        qq)
      local opts="$common --schema --contact --limit -l --status"
            ;;
        rq)
      local opts="$common --date --from --report -r --to"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--report" || "$prev" == "-r" ]]; then
        COMPREPLY=( $(compgen -W "pnl bs tb" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--cache-ttl" ]]; then
        COMPREPLY=( $(compgen -W "five-minutes one-hour one-day seven-days" -- "$cur") )
        return 0
    fi

  COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
  return 0
}

complete -F _xeroctl xeroctl
`

const zshCompletionScript = `#compdef xeroctl

_xeroctl() {
  local -a cmds
  cmds=(
    'aq:account query'
    'bq:bank transaction query'
    'ca:contact add'
    'cache:response cache administration'
    'cq:contact query'
    'ia:invoice add'
    'iq:invoice query'
    'oq:organisation query'
    'pa:payment add'
    'pq:payment query'
    'qq:quote query'
    'rq:report query'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '--cache-ttl[cache TTL]:ttl:(five-minutes one-hour one-day seven-days)'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '--human[humanize amounts and timestamps]'
  '--local[render timestamps in local timezone]'
  '--no-cache[bypass the response cache]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tenant[tenant to use]:tenant'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'xeroctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    iq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '--contact[contact id]' \
        '(-l --limit)'{-l,--limit}'[limit results]:limit' \
        '--status[invoice statuses]' \
        '--where[server-side where clause]'
      ;;
    cq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '(-l --limit)'{-l,--limit}'[limit results]:limit' \
        '--search[free-text search]' \
        '--where[server-side where clause]'
      ;;
    rq)
      _arguments -C \
        $common \
        '(-r --report)'{-r,--report}'[report]:report:(pnl bs tb)' \
        '--date[as-of date]' \
        '--from[start date]' \
        '--to[end date]'
      ;;
    ca)
      _arguments -C \
        $common \
        '--name[contact name]' \
        '--email[contact email]' \
        '--first[first name]' \
        '--last[last name]'
      ;;
    pa)
      _arguments -C \
        $common \
        '--invoice[invoice id]' \
        '--account[account code]' \
        '--amount[payment amount]' \
        '--date[payment date]'
      ;;
    ia)
      _arguments -C \
        $common \
        '--file[JSON invoice document]:file:_files'
      ;;
    cache)
      _arguments '1: :((stats clear invalidate))'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _xeroctl xeroctl xeroctlgo
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: xeroctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "xeroctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
