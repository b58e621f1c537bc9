// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package openai provides the ai.Embedder implementation for OpenAI-compatible
// APIs via the langchaingo library. It works against OpenAI itself as well as
// local services such as Ollama, LocalAI, or vLLM.
//
// The API credential is read from the environment variable named by
// ai.Config.APIKeyEnv; services without authentication can leave it unset.
//
//	cfg := ai.NewConfig(ai.WithHost("http://localhost:11434"), ai.WithModel("embeddinggemma"))
//	embedder, err := openai.NewEmbedder(cfg)
//	vec, err := embedder.EmbedText(ctx, "sample text")
package openai
