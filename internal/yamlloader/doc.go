// Package yamlloader provides the YAML implementation of config.FileLoader.
//
// Definitions are keyed mappings whose order is declaration order:
//
//	about:
//	  object_name: MyNimbus
//	enums:
//	  Section:
//	    variants: [topSites, pocket]
//	features:
//	  homescreen:
//	    properties:
//	      sections_enabled:
//	        type: map(Section, bool)
//	        default: {topSites: true, pocket: false}
//	      title:
//	        type: optional(text)
//
// Types use the same expression grammar as HCL manifests. A scalar tagged
// `!ref` is a reference to a sibling property.
package yamlloader
