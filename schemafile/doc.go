// Package schemafile loads model declarations from YAML.
//
// A declaration file names a register and lists models with their
// attributes, choice groups and per-format mappings:
//
//	register: v1
//	models:
//	  - name: Person
//	    attributes:
//	      - {name: name, type: string, cardinality: one}
//	      - {name: tags, type: string, collection: [0, -1]}
//	    mappings:
//	      xml:
//	        root: person
//	        elements: [{name: name, to: name}, {name: tag, to: tags}]
//
// [File.Build] declares the models in dependency order, so attribute types
// and bases may refer to models declared later in the same file.
package schemafile
