// Package bfchat provides a chat front-end that answers breastfeeding
// questions with a hosted language model grounded on a seed website.
// It can also crawl the seed site breadth-first to build a text corpus
// used as retrieval context.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, sqlite/).
package bfchat

// DefaultSeedURL is the site the chatbot answers about.
const DefaultSeedURL = "https://www.lllfrance.org/"
