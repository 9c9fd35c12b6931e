package theme

import "fmt"

const colorScope = ":root,:root *,html,html *,body,body *,.preset-admin,.preset-admin *"

// ColorStyle overrides the brand custom properties with maximum precedence.
func ColorStyle(c HSL) string {
	return fmt.Sprintf(`<style id="primary-color-inline">%s{--brand-h:%d!important;--brand-s:%d!important;--brand-l:%d!important;--primary:%s!important;}</style>`,
		colorScope, c.H, c.S, c.L, c)
}

func FontStyle(f FontConfig) string {
	return `<style id="font-family-inline">` + f.CSS() + `</style>`
}

// restoreScript re-applies a color saved client side when the page arrived
// without a server-rendered color tag, and mirrors the served color into
// sessionStorage otherwise.
const restoreScript = `<script id="instant-color-apply">(function(){var re=/^\d+\s+\d+%\s+\d+%$/,k='primary-color-hsl',d=document,v=null;` +
	`var tag=d.getElementById('primary-color-inline');` +
	`if(tag){var m=/--primary:([^!;]+)!important/.exec(tag.textContent);if(m){try{sessionStorage.setItem(k,m[1]);}catch(e){}}return;}` +
	`try{var cs=d.cookie.split(';');for(var i=0;i<cs.length;i++){var c=cs[i].trim();if(c.indexOf(k+'=')===0){v=decodeURIComponent(c.substring(k.length+1));if(!re.test(v)){v=null;}break;}}}catch(e){v=null;}` +
	`if(!v){try{v=sessionStorage.getItem(k);if(v&&!re.test(v)){v=null;}}catch(e){}}` +
	`if(!v){return;}` +
	`d.documentElement.style.setProperty('--primary',v,'important');` +
	`var s=d.createElement('style');s.id='primary-color-session';s.textContent='` + colorScope + `{--primary:'+v+'!important;}';` +
	`if(d.head){d.head.insertBefore(s,d.head.firstChild);}})();</script>`

// HeadTags is the full payload inserted right after <head>.
func HeadTags(a Appearance) string {
	return ColorStyle(a.Color) + FontStyle(a.Fonts) + restoreScript
}
