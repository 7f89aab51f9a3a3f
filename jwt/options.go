// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package jwt

// Option defines a common functional options type which can be used in a
// variadic parameter pattern.
type Option func(interface{})

type configOptions struct {
	withAllowedAlgorithms []Alg
}

func configDefaults() configOptions {
	return configOptions{
		withAllowedAlgorithms: SupportedAlgorithms(),
	}
}

// getConfigOpts gets the defaults and applies the opt overrides passed
// in.
func getConfigOpts(opt ...Option) configOptions {
	opts := configDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// ApplyOpts takes a pointer to the options struct as a set of default options
// and applies the slice of opts as overrides.
func ApplyOpts(opts interface{}, opt ...Option) {
	for _, o := range opt {
		if o == nil { // ignore any nil Options
			continue
		}
		o(opts)
	}
}

// WithAllowedAlgorithms restricts the signing algorithms a KeySet accepts.
// By default every supported algorithm is accepted.
func WithAllowedAlgorithms(algs ...Alg) Option {
	return func(o interface{}) {
		switch v := o.(type) {
		case *configOptions:
			if len(algs) > 0 {
				v.withAllowedAlgorithms = algs
			}
		}
	}
}
