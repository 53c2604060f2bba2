package mock

import "github.com/fwojciec/mapsrc"

var _ mapsrc.AccessContext = (*AccessContext)(nil)

// AccessContext is a mock implementation of mapsrc.AccessContext.
type AccessContext struct {
	AuthorizedLevelsFn func() []int
	LanguageTagFn      func() string
}

func (a *AccessContext) AuthorizedLevels() []int {
	return a.AuthorizedLevelsFn()
}

func (a *AccessContext) LanguageTag() string {
	return a.LanguageTagFn()
}
