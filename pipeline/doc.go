// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Package pipeline encadeia chamadas dependentes à API Légifrance.
//
// Visão Geral:
// Cada etapa recebe um Envelope (payload + estágio) e devolve outro. O
// estágio descreve o formato do payload, e cada etapa confere se aceita o
// estágio recebido antes de processá-lo. Uma falha vira um envelope com
// StageError; o Pipeline para na primeira falha e devolve esse envelope
// como valor, sem propagar erro.
//
// Etapas Disponíveis:
//   - CallAPIStep: envia um descritor (ou uma lista deles) pelo executor e
//     devolve os corpos decodificados, na ordem da entrada.
//   - ExtractSearchResult: achata a resposta de busca em registros.
//   - FilterStep: filtra registros com uma expressão CEL.
//   - IdentifierExtraction: transforma registros em descritores de
//     consulta (LEGIARTI → GetArticle, LEGITEXT → LegiPart).
//   - Formatters: simplifica respostas de artigo e de texto.
//
// Exemplo de Uso:
//
//	p := pipeline.New([]pipeline.Step{
//		pipeline.NewCallAPIStep(cli),
//		pipeline.NewExtractSearchResult(),
//		pipeline.NewArticleIdentifiers(),
//		pipeline.NewCallAPIStep(cli),
//		pipeline.NewFormatters(),
//	})
//
//	out := p.Execute(ctx, pipeline.NewEnvelope(pipeline.StageSearchRequest, req))
//	if err := out.Err(); err != nil {
//		// out.Payload é um *pipeline.Failure
//	}
package pipeline
