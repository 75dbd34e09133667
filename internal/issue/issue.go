// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	RelativeWorkingDirectoryId
	UnsupportedSpecialPathId
	UnknownSpecialPathId
	EnvironmentInitFailedId
	VariableNotSetId
	ExpansionFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Markdown returns the issue text with a trailing link list.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return sb.String()
}

func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

const docsBase = "https://github.com/invowk/buildenv/blob/main/README.md"

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file exists but could not be read or validated.

## Things you can try:
- Print the file buildenv tried to load:
~~~
$ buildenv config path
~~~

- Check the CUE syntax of the file, or regenerate the defaults:
~~~
$ buildenv config init --force
~~~

- Point buildenv at another file with ` + "`--config`" + `.`,
		docLinks: []HttpLink{docsBase + "#configuration"},
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	relativeWorkingDirectoryIssue = &Issue{
		id: RelativeWorkingDirectoryId,
		mdMsg: `
# Working directory must be absolute!

The working directory can only be changed to an absolute path. Relative
paths are ambiguous once the current directory has moved.

## Things you can try:
- Pass an absolute path:
~~~
$ buildenv -C "$PWD/subdir" info
~~~`,
		docLinks: []HttpLink{docsBase + "#working-directory"},
	}

	unsupportedSpecialPathIssue = &Issue{
		id: UnsupportedSpecialPathId,
		mdMsg: `
# Special path not available on this platform!

The requested special folder has no mapping on the current operating system,
or the variable that backs it is not set.

## Things you can try:
- List every special path with its resolution status:
~~~
$ buildenv path --all
~~~

- On Unix, make sure HOME is set. Most folders are derived from it.`,
		docLinks: []HttpLink{docsBase + "#special-paths"},
		extLinks: []HttpLink{"https://specifications.freedesktop.org/basedir-spec/latest/"},
	}

	unknownSpecialPathIssue = &Issue{
		id: UnknownSpecialPathId,
		mdMsg: `
# Unknown special path!

The name does not match any special folder.

## Valid names:
- temp
- home
- app-data
- local-app-data
- common-app-data
- cache
- program-files
- program-files-x86
- windows`,
		docLinks: []HttpLink{docsBase + "#special-paths"},
	}

	environmentInitFailedIssue = &Issue{
		id: EnvironmentInitFailedId,
		mdMsg: `
# Failed to inspect the build environment!

buildenv could not locate its own executable or read the current directory.

## Things you can try:
- Make sure the current directory still exists and is readable
- Run with ` + "`--verbose`" + ` to see the full error chain`,
		docLinks: []HttpLink{docsBase + "#troubleshooting"},
	}

	variableNotSetIssue = &Issue{
		id: VariableNotSetId,
		mdMsg: `
# Environment variable not set!

At least one of the requested variables is absent from the process environment.

## Things you can try:
- List every variable buildenv can see:
~~~
$ buildenv env
~~~

- On Unix, names are case-sensitive. On Windows they are not.`,
		docLinks: []HttpLink{docsBase + "#environment-variables"},
	}

	expansionFailedIssue = &Issue{
		id: ExpansionFailedId,
		mdMsg: `
# Failed to expand the string!

The input could not be parsed as a shell word, references an unset variable
in strict mode, or uses command substitution.

## Things you can try:
- Quote the argument so your own shell does not expand it first:
~~~
$ buildenv expand '${HOME}/bin'
~~~

- Drop ` + "`--strict`" + ` to expand unset variables to the empty string`,
		docLinks: []HttpLink{docsBase + "#expansion"},
		extLinks: []HttpLink{"https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html#tag_18_06_02"},
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():         configLoadFailedIssue,
		relativeWorkingDirectoryIssue.Id(): relativeWorkingDirectoryIssue,
		unsupportedSpecialPathIssue.Id():   unsupportedSpecialPathIssue,
		unknownSpecialPathIssue.Id():       unknownSpecialPathIssue,
		environmentInitFailedIssue.Id():    environmentInitFailedIssue,
		variableNotSetIssue.Id():           variableNotSetIssue,
		expansionFailedIssue.Id():          expansionFailedIssue,
	}
)

// Values returns every registered issue ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
