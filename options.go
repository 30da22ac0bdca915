package respool

// AcceptAll is the Filter that accepts every resource.
//
// It's the filter used by Take when none is set.
func AcceptAll(resource interface{}) bool {
	return true
}

// TakeOptions defines a read-only view of options used in Take.
type TakeOptions interface {
	// GetFilter returns the filter deciding which idle members Take may
	// reuse.
	//
	// It never returns nil.
	GetFilter() Filter

	// GetDefault returns the default resource and whether one was set.
	//
	// When set, Take uses the default instead of calling the factory if no
	// idle member passes the filter.
	GetDefault() (interface{}, bool)
}

// TakeOptionsBuilder defines a read-write view of options used in Take.
type TakeOptionsBuilder interface {
	TakeOptions

	// Build builds the read-only view of the options.
	Build() TakeOptions

	// SetFilter sets the filter deciding which idle members Take may reuse.
	SetFilter(f Filter) TakeOptionsBuilder

	// SetDefault sets the default resource.
	//
	// Note that when the default is used by a Take call,
	// it's added to the pool as a normal member and stays there afterwards.
	// It's meant for explicit sentinel resources,
	// not for a per-call transient fallback.
	SetDefault(resource interface{}) TakeOptionsBuilder
}

type takeOptions struct {
	filter     Filter
	def        interface{}
	hasDefault bool
}

// NewTakeOptions creates the default Take options:
// accept-all filter and no default resource.
func NewTakeOptions() TakeOptionsBuilder {
	return &takeOptions{
		filter: AcceptAll,
	}
}

func (opt *takeOptions) GetFilter() Filter {
	return opt.filter
}

func (opt *takeOptions) GetDefault() (interface{}, bool) {
	return opt.def, opt.hasDefault
}

func (opt *takeOptions) Build() TakeOptions {
	return opt
}

func (opt *takeOptions) SetFilter(f Filter) TakeOptionsBuilder {
	opt.filter = f
	return opt
}

func (opt *takeOptions) SetDefault(resource interface{}) TakeOptionsBuilder {
	opt.def = resource
	opt.hasDefault = true
	return opt
}
