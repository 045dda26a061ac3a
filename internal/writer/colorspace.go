package writer

// gammaHint is the metadata outcome of a colorspace label: either the
// sRGB profile chunk or a bare encoding gamma.
type gammaHint struct {
	srgb  bool
	gamma float64
}

// colorspaceHints maps known color-management labels (the names various
// OCIO configs use) to their PNG gamma/profile hint. Lookups are exact;
// labels not present leave the output without color info, which is
// still a valid file.
var colorspaceHints = map[string]gammaHint{
	// sRGB family
	"sRGB":            {srgb: true},
	"sRGB D65":        {srgb: true},
	"sRGB (D60 sim.)": {srgb: true},
	"out_srgbd60sim":  {srgb: true},
	"rrt_srgb":        {srgb: true},
	"srgb8":           {srgb: true},

	"Gamma1.8": {gamma: 1.0 / 1.8},

	// Gamma 2.2 family
	"Gamma2.2": {gamma: 1.0 / 2.2},
	"vd8":      {gamma: 1.0 / 2.2},
	"vd10":     {gamma: 1.0 / 2.2},
	"vd16":     {gamma: 1.0 / 2.2},
	"VD16":     {gamma: 1.0 / 2.2},

	// Linear family
	"Linear":     {gamma: 1.0},
	"linear":     {gamma: 1.0},
	"ACES2065-1": {gamma: 1.0},
	"aces":       {gamma: 1.0},
	"lnf":        {gamma: 1.0},
	"ln16":       {gamma: 1.0},
}
