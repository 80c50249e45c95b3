package emit

import (
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"join": strings.Join,
}

var tailwindTmpl = template.Must(template.New("tailwind").Funcs(funcs).Parse(`/* Generated design tokens — edit the source page, not this file. */
module.exports = {
  content: ['./src/**/*.{ts,tsx}'],
  theme: {
    extend: {
      colors: {
{{- range .Colors }}
        '{{ .Name }}': '{{ .Value }}',
{{- end }}
      },
      spacing: {
{{- range .Spacing }}
        '{{ .Name }}': '{{ .Value }}',
{{- end }}
      },
      fontSize: {
{{- range .FontSizes }}
        '{{ .Name }}': '{{ .Value }}',
{{- end }}
      },
      fontWeight: {
{{- range .FontWeights }}
        '{{ .Name }}': '{{ .Value }}',
{{- end }}
      },
      borderRadius: {
{{- range .Radii }}
        '{{ .Name }}': '{{ .Value }}',
{{- end }}
      },
      boxShadow: {
{{- range .Shadows }}
        '{{ .Name }}': '{{ .Value }}',
{{- end }}
      },
    },
  },
  plugins: [],
};
`))

var buttonTmpl = template.Must(template.New("button").Funcs(funcs).Parse(`import React from 'react';

// Detected {{ .Count }} button(s): {{ join .Names ", " }}.
// Variants observed: {{ join .Variants ", " }}.

type Variant = {{ range $i, $v := .Variants }}{{ if $i }} | {{ end }}'{{ $v }}'{{ end }};

const variantClasses: Record<Variant, string> = {
{{- if .HasVariant.default }}
  default: 'bg-blue-500 text-white hover:bg-blue-600',
{{- end }}
{{- if .HasVariant.outline }}
  outline: 'border border-gray-300 bg-white hover:bg-gray-50',
{{- end }}
{{- if .HasVariant.destructive }}
  destructive: 'bg-red-500 text-white hover:bg-red-600',
{{- end }}
{{- if .HasVariant.ghost }}
  ghost: 'bg-transparent hover:bg-gray-100',
{{- end }}
};

export interface ButtonProps extends React.ButtonHTMLAttributes<HTMLButtonElement> {
  variant?: Variant;
}

export function Button({ variant = '{{ .DefaultVariant }}', className = '', ...props }: ButtonProps) {
  return (
    <button
      className={'px-4 py-2 rounded-md font-medium ' + variantClasses[variant] + ' ' + className}
      {...props}
    />
  );
}
`))

var cardTmpl = template.Must(template.New("card").Funcs(funcs).Parse(`import React from 'react';

// Detected {{ .Count }} card(s): {{ join .Names ", " }}.

export interface CardProps {
  children?: React.ReactNode;
{{- if .HasFooter }}
  footer?: React.ReactNode;
{{- end }}
}

export function Card({ children{{ if .HasFooter }}, footer{{ end }} }: CardProps) {
  return (
    <div className="rounded-lg border border-gray-200 bg-white shadow-sm">
      <div className="p-4">{children}</div>
{{- if .HasFooter }}
      {footer && <div className="border-t border-gray-200 p-4">{footer}</div>}
{{- end }}
    </div>
  );
}
`))

var navTmpl = template.Must(template.New("nav").Funcs(funcs).Parse(`import React from 'react';

// Detected {{ .Count }} navigation landmark(s); layout: {{ .Layout }}.

export function Navigation({ children }: { children?: React.ReactNode }) {
  return (
    <nav className="{{ .LayoutClass }} items-center gap-4 px-4 py-2">
      {children}
    </nav>
  );
}
`))

var formTmpl = template.Must(template.New("form").Funcs(funcs).Parse(`import React from 'react';

// Detected {{ .Count }} form(s): {{ join .Names ", " }}.

export function Form({ onSubmit, children }: React.FormHTMLAttributes<HTMLFormElement>) {
  return (
    <form onSubmit={onSubmit} className="space-y-4">
      {children}
    </form>
  );
}
`))

var inputTmpl = template.Must(template.New("input").Funcs(funcs).Parse(`import React from 'react';

// Detected {{ .Count }} input(s). Types observed: {{ join .Types ", " }}.

export interface InputProps extends React.InputHTMLAttributes<HTMLInputElement> {}

export function Input({ type = '{{ .DefaultType }}', className = '', ...props }: InputProps) {
  return (
    <input
      type={type}
      className={'rounded-md border border-gray-300 px-3 py-2 text-sm ' + className}
      {...props}
    />
  );
}
`))

var modalTmpl = template.Must(template.New("modal").Funcs(funcs).Parse(`import React from 'react';

// Detected {{ .Count }} modal(s): {{ join .Names ", " }}.

export interface ModalProps {
  open: boolean;
  onClose: () => void;
  children?: React.ReactNode;
}

export function Modal({ open, onClose, children }: ModalProps) {
  if (!open) return null;
  return (
    <div className="fixed inset-0 z-50 flex items-center justify-center bg-black/50" onClick={onClose}>
      <div className="rounded-lg bg-white p-6 shadow-xl" onClick={(e) => e.stopPropagation()}>
        {children}
      </div>
    </div>
  );
}
`))

var layoutTmpl = template.Must(template.New("layout").Funcs(funcs).Parse(`import React from 'react';

// Detected {{ .Count }} layout container(s): {{ .FlexCount }} flex, {{ .GridCount }} grid, {{ .BlockCount }} block.

export function Stack({ children }: { children?: React.ReactNode }) {
  return <div className="flex flex-col gap-4">{children}</div>;
}

export function Row({ children }: { children?: React.ReactNode }) {
  return <div className="flex flex-row items-center gap-4">{children}</div>;
}
{{ if gt .GridCount 0 }}
export function Grid({ children }: { children?: React.ReactNode }) {
  return <div className="grid grid-cols-3 gap-4">{children}</div>;
}
{{ end }}`))
