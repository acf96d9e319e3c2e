// Package strands provides a high-level SDK for building LLM agents.
//
// This package wraps the lower-level orchestration packages to provide a
// simple interface for declaring an agent (model + tools + hooks + session
// persistence) and running its conversational event loop, including
// interrupt/resume and direct tool invocation.
package strands
