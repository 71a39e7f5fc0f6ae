// Package schema validates scene descriptions field by field.
//
// A Schema maps description keys to their expected types. Keys are optional
// unless listed as required, which matches how descriptions are loaded: a
// missing key keeps its default, a malformed one is ignored. Validation makes
// those silently ignored keys visible.
//
//	object := schema.Schema{
//	    "name":    schema.String(),
//	    "x":       schema.Int(),
//	    "width":   schema.Size(),
//	    "opacity": schema.Range(schema.Int(), 0, 255),
//	    "backgroundColor": schema.Color(),
//	}
//
//	if err := schema.Validate(object, desc, "name"); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        // ...
//	    }
//	}
//
// Errors carry a path so that nested descriptions (scene objects, group
// children, actions) can be reported precisely.
package schema
