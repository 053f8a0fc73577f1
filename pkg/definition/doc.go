// Package definition reads declarative form documents written in JSON or YAML
// and builds form.Form values from them. A document lists sections, each with
// rows; every row names its kind and the payload fields that kind uses:
//
//	title: Signup
//	sections:
//	  - title: Profile
//	    rows:
//	      - kind: text
//	        title: Name
//	        key: name
//	        validators:
//	          - rule: required
//	      - kind: listSelection
//	        title: Color
//	        selection: multiple
//	        options:
//	          - title: Red
//	            identifier: r
//	        selected: [0]
//
// JSON is attempted first and YAML second, so JSON documents with loosely
// typed scalars still load through the YAML path.
package definition
