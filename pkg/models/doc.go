// Package models descreve as requisições aceitas pela API Légifrance.
//
// Cada rota tem um tipo próprio que implementa Request: a rota, o tipo de
// resposta declarado e o corpo JSON (o próprio valor). Não há montagem
// dinâmica de rotas.
package models
