// Package config loads propmatch YAML option files.
//
// Example:
//
//	version: "1"
//	max_depth: 8
//	strict_conversions: false
//	methods: true
//	tag: map
//	aliases:
//	  Label: Name
//	ignore: [Tags]
//	pairs:
//	  - origin: store.OrderFilter
//	    target: warehouse.Order
//	    ignore: [Tags]
package config
