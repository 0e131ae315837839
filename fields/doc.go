// Package fields implements the field model used on the payment gateway
// wire: nested field trees, their flat bracket-path form and the
// form-encoded query string built from it.
//
// # Field Trees
//
// A Tree is a scalar, an ordered map or a list. Trees are built with the
// typed constructors, or converted from plain Go values with FromValue:
//
//	order := fields.Map(
//	    fields.E("action", fields.String("SALE")),
//	    fields.E("amount", fields.Int(1001)),
//	    fields.E("address", fields.Map(
//	        fields.E("street", fields.String("London Road")),
//	        fields.E("town", fields.String("Bristol")),
//	    )),
//	)
//
// # Flat Pairs
//
// Flatten turns a Tree into Pairs, the ordered sequence of flat fields
// that travels in an HTTP form body:
//
//	action=SALE
//	amount=1001
//	address[street]=London Road
//	address[town]=Bristol
//
// Unflatten rebuilds the nested structure, peeling bracket levels
// recursively. Keys numbered 0..n-1 in order are read back as a list at
// any level, so a map that uses such keys comes back as a list.
//
// # Query Strings
//
// Encode produces the form-encoded body for a sequence of pairs and
// ParseQuery decodes one while keeping field order and repeated keys,
// which url.ParseQuery does not.
package fields
