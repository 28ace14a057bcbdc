// Package syntree renders syntax tree descriptions into dark-themed inline
// SVG images using the external rsyntaxtree command.
//
// # Quick Start
//
// Render one tree onto a host element:
//
//	r := syntree.NewRenderer()
//	el := dom.NewElement() // or any TextInjectable
//	if err := r.Render(ctx, "[S [NP I] [VP run]]", el); err != nil {
//	    // the same error is already shown on el
//	}
//
// Or convert a whole Markdown document whose ```syntax fences hold trees:
//
//	conv, err := syntree.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, syntree.Input{Markdown: md})
//
// # Pipeline
//
// Each render is two steps:
//
//  1. The Invoker runs the renderer once with the source as a single argv
//     element, writing into a fresh per-request directory, and classifies
//     the result as an Outcome: success, process error or parse error.
//  2. The Presenter shows an error text on the host, or reads the SVG,
//     applies the Theme and attaches it as a data URI <object>.
//
// The Renderer strips line breaks from block text before invoking, and
// removes the request directory once presented.
//
// # Concurrency
//
// Renderer and Converter are safe for concurrent use. Every request gets
// its own output directory, so concurrent renders never read each other's
// images. Cancelling the context kills the renderer's process group.
//
// # Errors
//
// Render errors wrap ErrProcess, ErrParse or ErrReadImage and are always
// also shown on the host. Use errors.Is to classify them.
package syntree
