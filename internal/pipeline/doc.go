// Package pipeline runs a publish: input handlers, the build step, manifest
// resolution, output handlers, then an error policy over the collected
// handler results.
//
// Handlers are bound to phases at registration time:
//
//	p, err := pipeline.New(pipeline.Options{
//	    Config:  domain.RunConfig{ProjectPath: "App.csproj", Source: domain.SourceBoth},
//	    Builder: build.NewMSBuild(build.Options{}),
//	    Handlers: []pipeline.Registration{
//	        pipeline.Input(cleanup),
//	        pipeline.Output(zipper),
//	        pipeline.Dual(info),
//	    },
//	    Policy: pipeline.PolicyFailAggregate,
//	})
//	outcome, err := p.Run(ctx)
//
// Handlers run strictly in registration order within their phase. A failing
// or panicking handler becomes an Error result and the remaining handlers of
// that phase still run, unless StopOnError is set.
package pipeline
