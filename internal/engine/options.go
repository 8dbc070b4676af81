package engine

import (
	"strconv"
	"strings"
)

// Recognized option keys. Global keys come from the build as a whole; every
// other key is per-resource metadata.
const (
	KeyAutoEmbed     = "auto-embed"
	KeyRootNamespace = "root-namespace"
	KeyProjectRoot   = "project-root"

	KeyEmbed                = "embed"
	KeyNamespace            = "namespace"
	KeyContainerName        = "container-name"
	KeyIsConstant           = "is-constant"
	KeyIdentifier           = "identifier"
	KeyPreviewLineLimit     = "preview-line-limit"
	KeyStaticContainer      = "static-container"
	KeyDirectoryAsContainer = "directory-as-container"
	KeyPreviewStyle         = "preview-style"
)

// DefaultPreviewLineLimit is used when preview-line-limit is absent or unparseable.
const DefaultPreviewLineLimit uint = 20

// DefaultMemberName names the generated member unless overridden.
const DefaultMemberName = "Content"

// RawOptions maps option keys to their unparsed values. A missing key means
// the option is unset.
type RawOptions map[string]string

// Get returns the value for key and whether it was set.
func (o RawOptions) Get(key string) (string, bool) {
	if o == nil {
		return "", false
	}
	v, ok := o[key]
	return v, ok
}

// Clone returns a shallow copy that is safe to modify.
func (o RawOptions) Clone() RawOptions {
	out := make(RawOptions, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Merge returns a copy of o with every key of overrides applied on top.
func (o RawOptions) Merge(overrides RawOptions) RawOptions {
	out := o.Clone()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// MemberKind selects how the generated member exposes the content.
type MemberKind int

const (
	// AccessorMember is a computed, expression-bodied static property.
	AccessorMember MemberKind = iota
	// ConstantMember is a compile-time constant.
	ConstantMember
)

func (k MemberKind) String() string {
	switch k {
	case ConstantMember:
		return "constant"
	default:
		return "accessor"
	}
}

// ContainerKind selects the modifiers of the generated container.
type ContainerKind int

const (
	// PartialContainer can be instantiated and extended by other partial declarations.
	PartialContainer ContainerKind = iota
	// StaticPartialContainer cannot be instantiated.
	StaticPartialContainer
)

func (k ContainerKind) String() string {
	switch k {
	case StaticPartialContainer:
		return "static partial"
	default:
		return "partial"
	}
}

// PreviewStyle selects how preview lines are protected from the documentation markup.
type PreviewStyle int

const (
	// PreviewCDATA wraps the preview in a CDATA section.
	PreviewCDATA PreviewStyle = iota
	// PreviewEntities replaces markup characters with entity references.
	PreviewEntities
)

func (s PreviewStyle) String() string {
	switch s {
	case PreviewEntities:
		return "entities"
	default:
		return "cdata"
	}
}

// ResolvedOptions is the fully typed view of one resource's configuration.
type ResolvedOptions struct {
	RootNamespace string
	ProjectRoot   string

	// Explicit overrides. Empty means derive.
	Namespace     string
	ContainerName string
	Identifier    string

	Member               MemberKind
	Container            ContainerKind
	PreviewLineLimit     uint
	PreviewStyle         PreviewStyle
	DirectoryAsContainer bool

	// Included is decided once by Resolve.
	Included bool
}

// Resolve merges the global and per-resource options of a single resource.
// Malformed values never fail; they fall back to their defaults.
func Resolve(global, local RawOptions) ResolvedOptions {
	autoEmbed := "true"
	if v, ok := global.Get(KeyAutoEmbed); ok {
		autoEmbed = v
	}
	embed, _ := local.Get(KeyEmbed)

	opts := ResolvedOptions{
		Included:         (isTrue(autoEmbed) || isTrue(embed)) && !isFalse(embed),
		PreviewLineLimit: DefaultPreviewLineLimit,
	}
	opts.RootNamespace, _ = global.Get(KeyRootNamespace)
	opts.ProjectRoot, _ = global.Get(KeyProjectRoot)
	opts.Namespace, _ = local.Get(KeyNamespace)
	opts.ContainerName, _ = local.Get(KeyContainerName)
	opts.Identifier, _ = local.Get(KeyIdentifier)

	if v, _ := local.Get(KeyIsConstant); isTrue(v) {
		opts.Member = ConstantMember
	}
	if v, _ := local.Get(KeyStaticContainer); isTrue(v) {
		opts.Container = StaticPartialContainer
	}
	if v, _ := local.Get(KeyDirectoryAsContainer); isTrue(v) {
		opts.DirectoryAsContainer = true
	}
	if v, ok := local.Get(KeyPreviewLineLimit); ok {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			opts.PreviewLineLimit = uint(n)
		}
	}
	if v, _ := local.Get(KeyPreviewStyle); strings.EqualFold(v, PreviewEntities.String()) {
		opts.PreviewStyle = PreviewEntities
	}
	return opts
}

func isTrue(v string) bool  { return strings.EqualFold(v, "true") }
func isFalse(v string) bool { return strings.EqualFold(v, "false") }
