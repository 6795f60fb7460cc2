// Package schema defines the table shape shared by the parser, loader,
// resolver and plugins.
//
// A schema file has the following sections, each mapping an identifier to
// a section-specific config record:
//
//	use:
//	  - ./shared.yml
//	type:
//	  Address:
//	    columns:
//	      - name: street
//	        type: String
//	model:
//	  Profile:
//	    extends: Contact
//	    attributes:
//	      label: [Profile, Profiles]
//	    columns:
//	      - name: id
//	        type: String
//	        required: true
//	enum:
//	  Roles:
//	    ADMIN: Admin
//	prop:
//	  Config:
//	    placeholder: Enter a value
//	plugin:
//	  ./in/make-enums:
//	    output: ./out/enums.ts
//
// Identifiers are unique within a section and iteration follows declaration
// order, which is why every section is a Map rather than a Go map.
package schema
