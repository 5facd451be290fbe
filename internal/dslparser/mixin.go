package dslparser

import "github.com/dmdtool/dmd/internal/schema"

func buildMixin(block rawBlock) (*schema.MixinModel, error) {
	m := mixinHeaderRe.FindStringSubmatch(block.Header)
	if m == nil {
		return nil, newParseError(block.File, block.HeaderLine, "malformed mixin header %q", block.Header)
	}

	mixin := &schema.MixinModel{Name: m[1]}
	if err := processMixinBody(mixin, block.Body); err != nil {
		return nil, err
	}
	return mixin, nil
}
