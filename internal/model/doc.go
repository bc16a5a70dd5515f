// Package model defines the core data structures shared by the allofart
// client packages.
//
// # Artist
//
// Artist is the record served by the artist detail endpoint:
//
//	var a model.Artist
//	_ = json.Unmarshal(body, &a)
//	fmt.Println(a.Portrait()) // images[0]
//	fmt.Println(a.Gallery())  // images[1:7], clamped
//
// Image paths are relative to the asset server. Use ImageURL to compose a
// displayable locator:
//
//	url := model.ImageURL("https://art.example.com", a.Portrait())
//
// # Tabs
//
// Tab is the closed set of sections on the artist page (About, Life,
// Paintings). Progress maps a tab to the fraction shown by the progress
// indicator:
//
//	model.Progress(model.TabLife) // 0.58
package model
