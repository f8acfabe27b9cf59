// Package hcl provides the HCL implementation of config.FileLoader. It is
// responsible for parsing feature manifests, translating type expressions
// into the type model and default expressions into raw default trees that
// keep their source order.
//
// A manifest looks like:
//
//	about {
//	  object_name = "MyNimbus"
//	}
//
//	enum "Section" {
//	  variants = ["topSites", "pocket"]
//	}
//
//	feature "homescreen" {
//	  property "sections_enabled" {
//	    type    = map(Section, bool)
//	    default = { topSites = true, pocket = false }
//	  }
//	  property "title" {
//	    type = optional(text)
//	  }
//	}
package hcl
