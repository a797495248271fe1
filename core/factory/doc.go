// Package factory implements the generic plugin registry behind
// configurable components such as metric sinks. A component is selected
// by a type string and configured through a raw settings map; the
// registered factory decodes those settings and builds the instance.
//
// A sink factory registers itself like this:
//
//	metrics.RegisterSink("csv", func(conf map[string]any) (metrics.Sink, error) {
//	    var c struct {
//	        Path string `json:"path"`
//	    }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return NewCSVSink(c.Path)
//	})
//
// and is then reachable from any config file listing a module of that
// type.
package factory
