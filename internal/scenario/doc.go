// Package scenario describes a view hierarchy, an anchor and a tip in a YAML
// document and builds the matching in-memory scene.
//
// A scenario is what the CLI lays out, renders and animates:
//
//	name: settings-button
//	window: {width: 320, height: 480}
//	anchor: button
//	views:
//	  - name: container
//	    frame: {x: 0, y: 0, width: 320, height: 480}
//	    children:
//	      - name: button
//	        frame: {x: 140, y: 100, width: 40, height: 30}
//	container: container
//	content:
//	  title: Hint
//	  message: Tap here to open settings.
//	theme: dark
//	style:
//	  corner_radius: 6
//	behavior:
//	  animation: pop
package scenario
